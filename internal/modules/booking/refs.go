package booking

import (
	"fmt"
	"math/rand"
	"time"
)

// Display reference formats. These codes are what the customer sees and
// quotes on the phone; collision resistance comes from the uuid primary key
// stamped at the persistence boundary, not from these.
//
//	tracking number:   MS + 8 time-derived digits + 4 random digits
//	booking reference: BK + 6 time-derived digits + 3 random digits

const trackingPrefix = "MS"
const referencePrefix = "BK"

func newTrackingNumber(now time.Time) string {
	return fmt.Sprintf("%s%08d%04d", trackingPrefix, now.UnixMilli()%1e8, rand.Intn(10000))
}

func newBookingReference(now time.Time) string {
	return fmt.Sprintf("%s%06d%03d", referencePrefix, now.UnixMilli()%1e6, rand.Intn(1000))
}
