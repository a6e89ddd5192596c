package read

import "time"

// timeNow выделено для подмены времени в тестах.
var timeNow = time.Now
