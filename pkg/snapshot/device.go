package snapshot

import "strings"

// Category is the coarse device class device-scoped rules match against.
type Category string

const (
	CategoryUnknown Category = "unknown"
	CategoryMobile  Category = "mobile"
	CategoryDesktop Category = "desktop"
)

// deviceCategories maps the device names the portal reports to a category.
// Devices absent from the table are CategoryUnknown.
var deviceCategories = map[string]Category{
	"android phone":  CategoryMobile,
	"android tablet": CategoryMobile,
	"iphone":         CategoryMobile,
	"ipad":           CategoryMobile,
	"ipod":           CategoryMobile,
	"android":        CategoryMobile,
	"ios":            CategoryMobile,
	"windows pc":     CategoryDesktop,
	"mac":            CategoryDesktop,
	"linux pc":       CategoryDesktop,
	"windows":        CategoryDesktop,
	"macos":          CategoryDesktop,
	"linux":          CategoryDesktop,
	"bsd":            CategoryDesktop,
}

// Classify maps a device name to its category.
func Classify(device string) Category {
	if c, ok := deviceCategories[strings.ToLower(strings.TrimSpace(device))]; ok {
		return c
	}
	return CategoryUnknown
}

// DetectOS extracts the operating system from a user agent, using the same
// precedence as the portal's visit tracker.
func DetectOS(userAgent string) string {
	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad") || strings.Contains(ua, "ipod"):
		return "iOS"
	case strings.Contains(ua, "mac os") || strings.Contains(ua, "macintosh"):
		return "macOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "linux"):
		return "Linux"
	case strings.Contains(ua, "bsd"):
		return "BSD"
	default:
		return "Unknown"
	}
}

// Category returns the detail's device category. An explicit device wins;
// otherwise the user agent is classified.
func (d VisitorDetail) Category() Category {
	if d.Device != "" {
		return Classify(d.Device)
	}
	if d.UserAgent != "" {
		return Classify(DetectOS(d.UserAgent))
	}
	return CategoryUnknown
}
