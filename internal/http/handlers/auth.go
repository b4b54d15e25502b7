package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	intconfig "safariconnector/internal/config"
	"safariconnector/internal/domain"
	"safariconnector/internal/domain/models"
	"safariconnector/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// isDuplicateKey reports a MySQL unique-constraint violation (error 1062).
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// AuthUser is the user payload returned on login/register.
type AuthUser struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	OperatorID int64  `json:"operator_id,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		user         AuthUser
		passwordHash string
	)
	err := intconfig.DB.QueryRow(`
        SELECT id, name, email, password_hash, role
        FROM users
        WHERE email = ?
    `, strings.TrimSpace(req.Email)).Scan(
		&user.ID, &user.Name, &user.Email, &passwordHash, &user.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "user lookup failed", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong email or password", nil)
		return
	}

	if user.Role == string(domain.RoleOperator) {
		if op, err := (repositories.OperatorRepository{}).GetByUserID(user.ID); err == nil {
			user.OperatorID = op.ID
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":     user.ID,
		"role":        user.Role,
		"operator_id": user.OperatorID,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString, "user": user})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// Role may be traveller or operator; operator registrations start as
	// pending suppliers awaiting admin approval.
	Role    string `json:"role"`
	Company string `json:"company"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = string(domain.RoleTraveller)
	}
	if role != string(domain.RoleTraveller) && role != string(domain.RoleOperator) {
		RespondError(c, http.StatusBadRequest, "role must be traveller or operator", nil)
		return
	}
	if strings.TrimSpace(req.Email) == "" || len(req.Password) < 8 {
		RespondError(c, http.StatusBadRequest, "email and a password of 8+ characters are required", nil)
		return
	}

	var exists int
	if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, req.Email).Scan(&exists); err != nil {
		RespondError(c, http.StatusInternalServerError, "user check failed", err)
		return
	}
	if exists > 0 {
		RespondError(c, http.StatusBadRequest, "email is already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	res, err := intconfig.DB.Exec(`
        INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
        VALUES (?, ?, ?, ?, NOW(), NOW())
    `, strings.TrimSpace(req.Name), strings.TrimSpace(req.Email), string(hash), role)
	if err != nil {
		// the COUNT above races with concurrent registrations; the unique key
		// on email is the real guard
		if isDuplicateKey(err) {
			RespondError(c, http.StatusBadRequest, "email is already registered", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to save user", err)
		return
	}
	userID, _ := res.LastInsertId()

	user := AuthUser{ID: userID, Name: req.Name, Email: req.Email, Role: role}

	if role == string(domain.RoleOperator) {
		opID, err := (repositories.OperatorRepository{}).Create(models.Operator{
			UserID:  userID,
			Name:    strings.TrimSpace(req.Company),
			Email:   strings.TrimSpace(req.Email),
			Phone:   strings.TrimSpace(req.Phone),
			Country: strings.TrimSpace(req.Country),
			Status:  models.OperatorPending,
		})
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to create operator account", err)
			return
		}
		user.OperatorID = opID
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful", "user": user})
}
