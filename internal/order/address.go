package order

import (
	"fmt"
	"strings"
)

// ComposeAddress builds the stored address from the shared map link and a
// landmark.
func ComposeAddress(mapsLink, landmark string) string {
	return fmt.Sprintf("%s\n\nPatokan: %s", mapsLink, landmark)
}

// SplitAddress separates a leading map link from the rest of the address.
// Addresses that do not start with a link are returned whole as display.
func SplitAddress(address string) (mapsURL, display string) {
	if !strings.HasPrefix(address, "http") {
		return "", address
	}

	first, rest, _ := strings.Cut(address, "\n")
	return strings.TrimSpace(first), strings.TrimSpace(rest)
}
