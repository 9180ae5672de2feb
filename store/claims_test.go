package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClauseCoversEveryClaimColumn(t *testing.T) {
	// Every claim column, addressable by column name or JSON name.
	cases := map[string]string{
		"id":                   "claims.id",
		"amount":               "claims.amount",
		"status":               "claims.status",
		"description":          "claims.description",
		"submission_date":      "claims.submission_date",
		"submissionDate":       "claims.submission_date",
		"created_at":           "claims.created_at",
		"createdAt":            "claims.created_at",
		"updated_at":           "claims.updated_at",
		"updatedAt":            "claims.updated_at",
		"customer_id":          "claims.customer_id",
		"customerId":           "claims.customer_id",
		"claim_type_id":        "claims.claim_type_id",
		"claimTypeId":          "claims.claim_type_id",
		"assigned_agent_id":    "claims.assigned_agent_id",
		"assignedAgentId":      "claims.assigned_agent_id",
		"policy_number":        "claims.policy_number",
		"policyNumber":         "claims.policy_number",
		"agent_response":       "claims.agent_response",
		"agentResponse":        "claims.agent_response",
		"description_verified": "claims.description_verified",
		"descriptionVerified":  "claims.description_verified",
	}
	for in, want := range cases {
		assert.Equal(t, want, orderClause(in, false), "sortBy=%s", in)
	}
}

func TestOrderClauseFallbackAndDirection(t *testing.T) {
	assert.Equal(t, "claims.submission_date", orderClause("", false))
	assert.Equal(t, "claims.submission_date", orderClause("amount; DROP TABLE claims", false))
	assert.Equal(t, "claims.amount DESC", orderClause("amount", true))
}
