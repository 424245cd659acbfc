package model

// Verification status tokens as persisted. The deployment locale is
// Indonesian, so the stored tokens are localized; handlers accept a wider
// synonym set and normalize before anything touches the database.
const (
	StatusPending  = "menunggu"
	StatusApproved = "disetujui"
	StatusRejected = "ditolak"
)

// User roles
const (
	RoleBuyer  = "pembeli"
	RoleSeller = "penjual"
	RoleAdmin  = "admin"
)

// Photo provider tags distinguishing managed storage, externally hosted
// URLs, and legacy inline paths.
const (
	ProviderSupabase = "supabase"
	ProviderExternal = "external"
	ProviderLocal    = "local"
)

// Notification type tags
const (
	NotificationRestaurantVerified = "restaurant_verification"
	NotificationMenuVerified       = "menu_verification"
	NotificationMenuReviewed       = "menu_review"
)
