package model

// Platform identifies one of the simulated marketplaces.
type Platform string

const (
	PlatformSmartstore Platform = "SMARTSTORE"
	PlatformCoupang    Platform = "COUPANG"
	PlatformZigzag     Platform = "ZIGZAG"
	PlatformAbly       Platform = "ABLY"
)

func (p Platform) String() string {
	return string(p)
}

func (p Platform) Valid() bool {
	switch p {
	case PlatformSmartstore, PlatformCoupang, PlatformZigzag, PlatformAbly:
		return true
	}
	return false
}

// Platforms lists every simulated marketplace in a fixed order.
func Platforms() []Platform {
	return []Platform{PlatformSmartstore, PlatformCoupang, PlatformZigzag, PlatformAbly}
}
