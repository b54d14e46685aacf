package station

import "time"

var testTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
