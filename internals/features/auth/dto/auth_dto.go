package dto

type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type WorkerAuthRequest struct {
	AuthType  string `form:"auth_type" validate:"required,oneof=rfid fingerprint"`
	AuthValue string `form:"auth_value" validate:"required"`
}
