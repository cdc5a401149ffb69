package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"cort_fleet/internal/identity"
	"cort_fleet/internal/middleware"
	"cort_fleet/internal/models"
	"cort_fleet/internal/response"
)

// AuthController handles signup, login and profile. Credentials live with
// the identity provider; the local directory only stores the profile row.
type AuthController struct {
	DB       *gorm.DB
	Identity identity.Service
}

type signupInput struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	FullName string  `json:"full_name" binding:"required"`
	Phone    *string `json:"phone"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a user. Local uniqueness checks run before the external
// signup call so a duplicate email never creates a dangling provider record.
// New users always start as an ACTIVE EMPLOYEE.
func (ac *AuthController) Signup(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		response.Error(c, http.StatusConflict, response.MsgEmailExists)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusInternalServerError, "database error")
		return
	}

	if input.Phone != nil && *input.Phone != "" {
		if err := ac.DB.Where("phone = ?", *input.Phone).First(&existing).Error; err == nil {
			response.Error(c, http.StatusConflict, response.MsgPhoneExists)
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusInternalServerError, "database error")
			return
		}
	}

	subjectID, session, err := ac.Identity.SignUp(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.Err(c, err, http.StatusBadRequest)
		return
	}

	user := models.User{
		ID:       subjectID,
		Email:    input.Email,
		FullName: input.FullName,
		Phone:    input.Phone,
		Role:     models.RoleEmployee,
		Status:   models.StatusActive,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		// Storage-level constraint is the backstop for the advisory
		// pre-checks above.
		if isUniqueViolation(err) {
			response.Error(c, http.StatusConflict, response.MsgEmailExists)
			return
		}
		response.Error(c, http.StatusInternalServerError, "could not create user: "+err.Error())
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"user":    profileOf(user),
		"session": session,
	}, response.MsgSignupSuccess)
}

// Login exchanges credentials for a provider session. The endpoint may be
// superseded by client-side authentication against the provider; it stays
// public and unrestricted as specified.
func (ac *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	subjectID, session, err := ac.Identity.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		response.Err(c, err, http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := ac.DB.Where("id = ?", subjectID).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, response.MsgUserNotFound)
		return
	}

	switch user.Status {
	case models.StatusActive:
	default:
		response.Error(c, http.StatusUnauthorized, response.MsgUserInactive)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"user":    profileOf(user),
		"session": session,
	}, response.MsgLoginSuccess)
}

// Profile returns the caller's directory record, re-read from the store.
func (ac *AuthController) Profile(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var user models.User
	if err := ac.DB.Where("id = ?", current.ID).First(&user).Error; err != nil {
		response.Error(c, http.StatusUnauthorized, response.MsgUserNotFound)
		return
	}

	response.JSON(c, http.StatusOK, profileOf(user), response.MsgProfileRetrieved)
}

func profileOf(user models.User) models.AuthenticatedUser {
	return models.AuthenticatedUser{
		ID:        user.ID,
		Email:     user.Email,
		Phone:     user.Phone,
		FullName:  user.FullName,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		Status:    user.Status,
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
