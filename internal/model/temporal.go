package model

import "time"

// SystemUserID is recorded as last editor when a client does not name one.
const SystemUserID = 1

// EndOfTime is the valid_to of the current row of a temporal table.
var EndOfTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
