package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cort_fleet/internal/middleware"
	"cort_fleet/internal/models"
	"cort_fleet/internal/response"
)

// CompanyController implements company CRUD. Role and ownership checks for
// instance routes are applied by middleware at registration; list scoping
// lives here because it shapes the query itself.
type CompanyController struct {
	DB *gorm.DB
}

type createCompanyInput struct {
	Name               string  `json:"name" binding:"required"`
	Email              string  `json:"email" binding:"required,email"`
	NtnNumber          *string `json:"ntn_number"`
	ContactPerson      *string `json:"contact_person"`
	Address            *string `json:"address"`
	LogoURL            *string `json:"logo_url"`
	IsShuttleEnabled   *bool   `json:"is_shuttle_enabled"`
	IsChauffeurEnabled *bool   `json:"is_chauffeur_enabled"`
}

type updateCompanyInput struct {
	Name               *string `json:"name"`
	Email              *string `json:"email" binding:"omitempty,email"`
	NtnNumber          *string `json:"ntn_number"`
	ContactPerson      *string `json:"contact_person"`
	Address            *string `json:"address"`
	LogoURL            *string `json:"logo_url"`
	IsShuttleEnabled   *bool   `json:"is_shuttle_enabled"`
	IsChauffeurEnabled *bool   `json:"is_chauffeur_enabled"`
}

type listQuery struct {
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=10" binding:"omitempty,min=1"`
	Search string `form:"search"`
}

// Create registers a new company. SUPER_ADMIN only (enforced at the route).
func (cc *CompanyController) Create(c *gin.Context) {
	var input createCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.Company
	if err := cc.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		response.Error(c, http.StatusConflict, response.MsgCompanyEmailExists)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusInternalServerError, "database error")
		return
	}

	company := models.Company{
		Name:          input.Name,
		Email:         input.Email,
		NtnNumber:     input.NtnNumber,
		ContactPerson: input.ContactPerson,
		Address:       input.Address,
		LogoURL:       input.LogoURL,
	}
	if input.IsShuttleEnabled != nil {
		company.IsShuttleEnabled = *input.IsShuttleEnabled
	}
	if input.IsChauffeurEnabled != nil {
		company.IsChauffeurEnabled = *input.IsChauffeurEnabled
	}

	if err := cc.DB.Create(&company).Error; err != nil {
		if isUniqueViolation(err) {
			response.Error(c, http.StatusConflict, response.MsgCompanyEmailExists)
			return
		}
		response.Error(c, http.StatusInternalServerError, "could not create company: "+err.Error())
		return
	}

	response.JSON(c, http.StatusCreated, company, response.MsgCompanyCreated)
}

// List returns companies paginated. COMPANY_ADMIN only ever sees its own
// company; search filters by name, case-insensitive.
func (cc *CompanyController) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	q := cc.DB.Model(&models.Company{})
	if user.Role == models.RoleCompanyAdmin && user.CompanyID != nil {
		q = q.Where("id = ?", *user.CompanyID)
	}
	if query.Search != "" {
		q = q.Where("name ILIKE ?", "%"+query.Search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "could not count companies")
		return
	}

	var companies []models.Company
	if err := q.Order("created_at desc").
		Limit(query.Limit).
		Offset(response.Offset(query.Page, query.Limit)).
		Find(&companies).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "could not fetch companies")
		return
	}

	pagination := response.Paginate(query.Page, query.Limit, total)
	response.Paginated(c, http.StatusOK, companies, pagination, response.MsgCompanyListRetrieved)
}

// Get returns a single company by id.
func (cc *CompanyController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid company id")
		return
	}

	var company models.Company
	if err := cc.DB.First(&company, id).Error; err != nil {
		response.Error(c, http.StatusNotFound, response.MsgCompanyNotFound)
		return
	}

	response.JSON(c, http.StatusOK, company, response.MsgCompanyRetrieved)
}

// Update applies a partial update. Email changes re-run the uniqueness check.
func (cc *CompanyController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid company id")
		return
	}

	var company models.Company
	if err := cc.DB.First(&company, id).Error; err != nil {
		response.Error(c, http.StatusNotFound, response.MsgCompanyNotFound)
		return
	}

	var input updateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.Email != nil && *input.Email != company.Email {
		var existing models.Company
		if err := cc.DB.Where("email = ?", *input.Email).First(&existing).Error; err == nil {
			response.Error(c, http.StatusConflict, response.MsgCompanyEmailExists)
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusInternalServerError, "database error")
			return
		}
		company.Email = *input.Email
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.NtnNumber != nil {
		company.NtnNumber = input.NtnNumber
	}
	if input.ContactPerson != nil {
		company.ContactPerson = input.ContactPerson
	}
	if input.Address != nil {
		company.Address = input.Address
	}
	if input.LogoURL != nil {
		company.LogoURL = input.LogoURL
	}
	if input.IsShuttleEnabled != nil {
		company.IsShuttleEnabled = *input.IsShuttleEnabled
	}
	if input.IsChauffeurEnabled != nil {
		company.IsChauffeurEnabled = *input.IsChauffeurEnabled
	}

	if err := cc.DB.Save(&company).Error; err != nil {
		if isUniqueViolation(err) {
			response.Error(c, http.StatusConflict, response.MsgCompanyEmailExists)
			return
		}
		response.Error(c, http.StatusInternalServerError, "could not update company")
		return
	}

	response.JSON(c, http.StatusOK, company, response.MsgCompanyUpdated)
}

// Delete removes a company, but only when nothing references it: no users,
// no vehicles, no routes.
func (cc *CompanyController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid company id")
		return
	}

	var company models.Company
	if err := cc.DB.First(&company, id).Error; err != nil {
		response.Error(c, http.StatusNotFound, response.MsgCompanyNotFound)
		return
	}

	var userCount, vehicleCount, routeCount int64
	cc.DB.Model(&models.User{}).Where("company_id = ?", company.ID).Count(&userCount)
	cc.DB.Model(&models.Vehicle{}).Where("owner_company_id = ?", company.ID).Count(&vehicleCount)
	cc.DB.Model(&models.Route{}).Where("company_id = ?", company.ID).Count(&routeCount)

	if userCount > 0 || vehicleCount > 0 || routeCount > 0 {
		response.Error(c, http.StatusBadRequest, response.MsgCompanyHasRelations)
		return
	}

	if err := cc.DB.Delete(&company).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "could not delete company")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": response.MsgCompanyDeleted}, response.MsgCompanyDeleted)
}
