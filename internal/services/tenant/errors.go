package tenant

// TenantError is a custom error type for tenant-related errors
type TenantError string

// Error implements the error interface
func (e TenantError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrTenantNotFound TenantError = "tenant not found"
	ErrSelfFollow     TenantError = "a tenant cannot follow itself"
	ErrInvalidPrivacy TenantError = "invalid privacy setting"
	ErrInvalidKind    TenantError = "invalid tenant kind"
	ErrInvalidInput   TenantError = "invalid input"
	ErrNilConfig      TenantError = "config cannot be nil"
	ErrNilTenantRepo  TenantError = "tenant repository cannot be nil"
	ErrNilClock       TenantError = "clock cannot be nil"
)
