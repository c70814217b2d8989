package zwire

import "strconv"

func portString(p uint16) string {
	return strconv.FormatUint(uint64(p), 10)
}
