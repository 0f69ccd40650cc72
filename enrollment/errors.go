package enrollment

import "errors"

// ErrNoSeatAvailable means the class update matched no row: the class is
// gone or its last seat was taken by a racing checkout. The payment is
// already ledgered when this is returned.
var ErrNoSeatAvailable = errors.New("class missing or no seats available")
