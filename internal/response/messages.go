package response

// Auth messages.
const (
	MsgSignupSuccess    = "Signup successful"
	MsgLoginSuccess     = "Login successful"
	MsgProfileRetrieved = "Profile retrieved successfully"

	MsgInvalidCredentials = "Invalid email or password"
	MsgUserNotFound       = "User not found"
	MsgUserInactive       = "User account is inactive"
	MsgEmailExists        = "Email already exists"
	MsgPhoneExists        = "Phone number already exists"
)

// Company messages.
const (
	MsgCompanyCreated       = "Company created successfully"
	MsgCompanyUpdated       = "Company updated successfully"
	MsgCompanyDeleted       = "Company deleted successfully"
	MsgCompanyRetrieved     = "Company retrieved successfully"
	MsgCompanyListRetrieved = "Companies list retrieved successfully"

	MsgCompanyNotFound     = "Company not found"
	MsgCompanyEmailExists  = "Company with this email already exists"
	MsgCompanyAccessDenied = "You do not have permission to access this company"
	MsgCompanyHasRelations = "Cannot delete company with active users or related data"
)

// Vehicle messages.
const (
	MsgVehicleCreated       = "Vehicle created successfully"
	MsgVehicleUpdated       = "Vehicle updated successfully"
	MsgVehicleDeleted       = "Vehicle deleted successfully"
	MsgVehicleRetrieved     = "Vehicle retrieved successfully"
	MsgVehicleListRetrieved = "Vehicles list retrieved successfully"

	MsgVehicleNotFound     = "Vehicle not found"
	MsgPlateExists         = "Vehicle with this plate number already exists"
	MsgVehicleAccessDenied = "You do not have permission to access this vehicle"
	MsgVehicleHasRelations = "Cannot delete vehicle because it has associated bookings, routes, or drivers"
)
