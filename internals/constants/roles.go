package constants

import "fmt"

// Role yang dikenal sistem
const (
	RoleUser  = "user"  // kontributor rekaman
	RoleAdmin = "admin" // reviewer/eksporter dataset
)

// Template pesan error role
const ErrOnlyAdminsCanAccess = "❌ Hanya admin yang boleh mengakses fitur %s."

// Fungsi helper untuk menghasilkan pesan error dinamis
func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var AdminOnly = []string{
	RoleAdmin,
}
