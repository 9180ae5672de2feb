package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"claimflow/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// RegisterRequest is the /api/auth/register payload.
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
	NationalID  string `json:"nationalId"`
}

// RegisterUser validates uniqueness of email, phone and national id,
// hashes the password and stores the user. Customers get a generated
// policy number.
func RegisterUser(req RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email required")
	}
	if len(req.Password) < 6 { // basic password policy
		return nil, fmt.Errorf("password too short (min 6)")
	}
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	switch role {
	case "":
		role = models.RoleCustomer
	case models.RoleAdmin, models.RoleAgent, models.RoleCustomer:
	default:
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}

	if exists, err := repos.Users.EmailExists(email); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("email already registered")
	}
	if exists, err := repos.Users.PhoneExists(req.PhoneNumber); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("phone number already registered")
	}
	if exists, err := repos.Users.NationalIDExists(req.NationalID); err != nil {
		return nil, err
	} else if exists {
		return nil, fmt.Errorf("national id already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          email,
		HashedPassword: hashed,
		Role:           role,
		PhoneNumber:    strings.TrimSpace(req.PhoneNumber),
		NationalID:     strings.TrimSpace(req.NationalID),
	}
	if role == models.RoleCustomer {
		policy, err := generatePolicyNumber()
		if err != nil {
			return nil, err
		}
		user.PolicyNumber = policy
	}
	if err := repos.Users.Create(user); err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return nil, fmt.Errorf("email already registered")
		}
		return nil, err
	}
	return user, nil
}

// generatePolicyNumber builds POL-YYYYMMDD plus a 3-digit suffix and
// retries on the rare collision.
func generatePolicyNumber() (string, error) {
	prefix := "POL-" + time.Now().Format("20060102")
	for i := 0; i < 20; i++ {
		candidate := fmt.Sprintf("%s%03d", prefix, rand.Intn(1000))
		exists, err := repos.Users.PolicyExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not allocate a policy number")
}

func Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := repos.Users.ByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		mc, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		email, _ := mc["email"].(string)
		role, _ := mc["role"].(string)
		c.Set("email", email)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

// requireRoles aborts with 403 unless the authenticated role is listed.
func requireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		c.Abort()
	}
}

// currentUser fetches the authenticated user using the email set by jwtAuthMiddleware
func currentUser(c *gin.Context) (*models.User, bool) {
	emailVal, _ := c.Get("email")
	if emailVal == nil {
		return nil, false
	}
	user, err := repos.Users.ByEmail(emailVal.(string))
	if err != nil {
		return nil, false
	}
	return user, true
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
