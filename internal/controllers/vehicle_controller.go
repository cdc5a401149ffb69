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

// VehicleController implements vehicle CRUD. Vehicles are either owned by a
// client company or part of the Cort managed fleet (owner_company_id null),
// and the two populations are mutually invisible: COMPANY_ADMIN is pinned to
// its own fleet, SUPER_ADMIN to the managed fleet unless auditing with
// show_all. SUPER_ADMIN never mutates client-owned vehicles.
type VehicleController struct {
	DB *gorm.DB
}

type createVehicleInput struct {
	PlateNumber           string   `json:"plate_number" binding:"required"`
	Make                  string   `json:"make" binding:"required"`
	Model                 string   `json:"model" binding:"required"`
	Year                  int      `json:"year" binding:"required,min=1900"`
	Color                 *string  `json:"color"`
	Category              string   `json:"category" binding:"required,oneof=SEDAN SUV VAN BUS COASTER HIACE"`
	Ownership             string   `json:"ownership" binding:"required,oneof=OWNED PARTNER"`
	FuelAvgCity           *float64 `json:"fuel_avg_city" binding:"required,min=0"`
	FuelAvgHighway        *float64 `json:"fuel_avg_highway" binding:"required,min=0"`
	OwnerCompanyID        *uint    `json:"owner_company_id"`
	IsAvailableForPooling *bool    `json:"is_available_for_pooling"`
}

type updateVehicleInput struct {
	PlateNumber           *string  `json:"plate_number"`
	Make                  *string  `json:"make"`
	Model                 *string  `json:"model"`
	Year                  *int     `json:"year" binding:"omitempty,min=1900"`
	Color                 *string  `json:"color"`
	Category              *string  `json:"category" binding:"omitempty,oneof=SEDAN SUV VAN BUS COASTER HIACE"`
	Ownership             *string  `json:"ownership" binding:"omitempty,oneof=OWNED PARTNER"`
	FuelAvgCity           *float64 `json:"fuel_avg_city" binding:"omitempty,min=0"`
	FuelAvgHighway        *float64 `json:"fuel_avg_highway" binding:"omitempty,min=0"`
	IsAvailableForPooling *bool    `json:"is_available_for_pooling"`
	// owner_company_id is deliberately absent: ownership never changes
	// through update.
}

type vehicleQuery struct {
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=10" binding:"omitempty,min=1"`
	Search    string `form:"search"`
	Category  string `form:"category" binding:"omitempty,oneof=SEDAN SUV VAN BUS COASTER HIACE"`
	Ownership string `form:"ownership" binding:"omitempty,oneof=OWNED PARTNER"`
	ShowAll   bool   `form:"show_all"`
}

// Create registers a vehicle. A COMPANY_ADMIN's vehicle is auto-owned by
// their company; a SUPER_ADMIN may only create managed-fleet vehicles and
// cannot act on behalf of a client.
func (vc *VehicleController) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var input createVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var existing models.Vehicle
	if err := vc.DB.Where("plate_number = ?", input.PlateNumber).First(&existing).Error; err == nil {
		response.Error(c, http.StatusConflict, response.MsgPlateExists)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		response.Error(c, http.StatusInternalServerError, "database error")
		return
	}

	var ownerCompanyID *uint
	switch user.Role {
	case models.RoleCompanyAdmin:
		if user.CompanyID == nil {
			response.Error(c, http.StatusBadRequest, "User does not belong to any company")
			return
		}
		ownerCompanyID = user.CompanyID
	case models.RoleSuperAdmin:
		if input.OwnerCompanyID != nil {
			response.Error(c, http.StatusForbidden,
				"Super Admins can only create Cort Managed vehicles (no owner). Client fleets must be managed by the client.")
			return
		}
	}

	vehicle := models.Vehicle{
		PlateNumber:    input.PlateNumber,
		Make:           input.Make,
		Model:          input.Model,
		Year:           input.Year,
		Color:          input.Color,
		Category:       input.Category,
		Ownership:      input.Ownership,
		FuelAvgCity:    *input.FuelAvgCity,
		FuelAvgHighway: *input.FuelAvgHighway,
		OwnerCompanyID: ownerCompanyID,
	}
	if input.IsAvailableForPooling != nil {
		vehicle.IsAvailableForPooling = *input.IsAvailableForPooling
	}

	if err := vc.DB.Create(&vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			response.Error(c, http.StatusConflict, response.MsgPlateExists)
			return
		}
		response.Error(c, http.StatusInternalServerError, "could not create vehicle: "+err.Error())
		return
	}

	vc.attachCompany(&vehicle)
	response.JSON(c, http.StatusCreated, vehicle, response.MsgVehicleCreated)
}

// List returns vehicles paginated, scoped by the caller's role and filtered
// by search (plate/make/model), category and ownership.
func (vc *VehicleController) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var query vehicleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	q := vc.DB.Model(&models.Vehicle{})

	switch user.Role {
	case models.RoleCompanyAdmin:
		if user.CompanyID != nil {
			q = q.Where("owner_company_id = ?", *user.CompanyID)
		}
	case models.RoleSuperAdmin:
		// Managed fleet by default; show_all widens to everything for
		// auditing and support.
		if !query.ShowAll {
			q = q.Where("owner_company_id IS NULL")
		}
	}

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		q = q.Where("plate_number ILIKE ? OR make ILIKE ? OR model ILIKE ?", pattern, pattern, pattern)
	}
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}
	if query.Ownership != "" {
		q = q.Where("ownership = ?", query.Ownership)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "could not count vehicles")
		return
	}

	var vehicles []models.Vehicle
	if err := q.Preload("Company").
		Order("id desc").
		Limit(query.Limit).
		Offset(response.Offset(query.Page, query.Limit)).
		Find(&vehicles).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "could not fetch vehicles")
		return
	}

	pagination := response.Paginate(query.Page, query.Limit, total)
	response.Paginated(c, http.StatusOK, vehicles, pagination, response.MsgVehicleListRetrieved)
}

// Get returns a single vehicle, enforcing the COMPANY_ADMIN row-level check.
func (vc *VehicleController) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	vehicle, ok := vc.findForUser(c, user)
	if !ok {
		return
	}

	response.JSON(c, http.StatusOK, vehicle, response.MsgVehicleRetrieved)
}

// Update applies a partial update after re-running the read ownership check.
// SUPER_ADMIN may only touch managed-fleet vehicles; ownership itself is
// immutable.
func (vc *VehicleController) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	vehicle, ok := vc.findForUser(c, user)
	if !ok {
		return
	}

	if user.Role == models.RoleSuperAdmin && vehicle.OwnerCompanyID != nil {
		response.Error(c, http.StatusForbidden,
			"Super Admins cannot modify client-owned vehicles. This data is managed by the client.")
		return
	}

	var input updateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if input.PlateNumber != nil && *input.PlateNumber != vehicle.PlateNumber {
		var existing models.Vehicle
		if err := vc.DB.Where("plate_number = ?", *input.PlateNumber).First(&existing).Error; err == nil {
			response.Error(c, http.StatusConflict, response.MsgPlateExists)
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusInternalServerError, "database error")
			return
		}
		vehicle.PlateNumber = *input.PlateNumber
	}

	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Color != nil {
		vehicle.Color = input.Color
	}
	if input.Category != nil {
		vehicle.Category = *input.Category
	}
	if input.Ownership != nil {
		vehicle.Ownership = *input.Ownership
	}
	if input.FuelAvgCity != nil {
		vehicle.FuelAvgCity = *input.FuelAvgCity
	}
	if input.FuelAvgHighway != nil {
		vehicle.FuelAvgHighway = *input.FuelAvgHighway
	}
	if input.IsAvailableForPooling != nil {
		vehicle.IsAvailableForPooling = *input.IsAvailableForPooling
	}

	if err := vc.DB.Save(vehicle).Error; err != nil {
		if isUniqueViolation(err) {
			response.Error(c, http.StatusConflict, response.MsgPlateExists)
			return
		}
		response.Error(c, http.StatusInternalServerError, "could not update vehicle")
		return
	}

	vc.attachCompany(vehicle)
	response.JSON(c, http.StatusOK, vehicle, response.MsgVehicleUpdated)
}

// Delete removes a vehicle after the ownership checks, and only when no
// bookings, routes, driver profiles or shuttle contracts reference it.
func (vc *VehicleController) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	vehicle, ok := vc.findForUser(c, user)
	if !ok {
		return
	}

	if user.Role == models.RoleSuperAdmin && vehicle.OwnerCompanyID != nil {
		response.Error(c, http.StatusForbidden,
			"Super Admins cannot delete client-owned vehicles. This data is managed by the client.")
		return
	}

	var bookings, routes, drivers, contracts int64
	vc.DB.Model(&models.ChauffeurBooking{}).Where("vehicle_id = ?", vehicle.ID).Count(&bookings)
	vc.DB.Model(&models.Route{}).Where("vehicle_id = ?", vehicle.ID).Count(&routes)
	vc.DB.Model(&models.DriverProfile{}).Where("vehicle_id = ?", vehicle.ID).Count(&drivers)
	vc.DB.Model(&models.ShuttleContract{}).Where("vehicle_id = ?", vehicle.ID).Count(&contracts)

	if bookings > 0 || routes > 0 || drivers > 0 || contracts > 0 {
		response.Error(c, http.StatusBadRequest, response.MsgVehicleHasRelations)
		return
	}

	if err := vc.DB.Delete(vehicle).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "could not delete vehicle")
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"message": response.MsgVehicleDeleted}, response.MsgVehicleDeleted)
}

// findForUser loads the vehicle from the :id parameter and applies the
// COMPANY_ADMIN row-level ownership check. On failure the response has
// already been written and ok is false.
func (vc *VehicleController) findForUser(c *gin.Context, user models.AuthenticatedUser) (*models.Vehicle, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid vehicle id")
		return nil, false
	}

	var vehicle models.Vehicle
	if err := vc.DB.Preload("Company").First(&vehicle, id).Error; err != nil {
		response.Error(c, http.StatusNotFound, response.MsgVehicleNotFound)
		return nil, false
	}

	if user.Role == models.RoleCompanyAdmin && !sameCompany(vehicle.OwnerCompanyID, user.CompanyID) {
		response.Error(c, http.StatusForbidden, response.MsgVehicleAccessDenied)
		return nil, false
	}

	return &vehicle, true
}

func (vc *VehicleController) attachCompany(vehicle *models.Vehicle) {
	if vehicle.OwnerCompanyID == nil {
		vehicle.Company = nil
		return
	}
	var company models.Company
	if err := vc.DB.First(&company, *vehicle.OwnerCompanyID).Error; err == nil {
		vehicle.Company = &company
	}
}

func sameCompany(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
