package bamboohr

import (
	"context"
	"strings"
)

// Photo sizes accepted by the employee photo endpoint.
const (
	PhotoOriginal = "original"
	PhotoLarge    = "large"  // 340x340
	PhotoMedium   = "medium" // 170x170
	PhotoSmall    = "small"  // 150x150
	PhotoXS       = "xs"     // 50x50
	PhotoTiny     = "tiny"   // 20x20
)

// GetPhoto fetches an employee photo in the given size and returns the raw
// image bytes. An empty size defaults to the original upload.
func (c *Client) GetPhoto(ctx context.Context, employeeID int, size string) ([]byte, error) {
	size = strings.TrimSpace(size)
	if size == "" {
		size = PhotoOriginal
	}
	return c.get(ctx, c.photoURL(employeeID, size), nil)
}
