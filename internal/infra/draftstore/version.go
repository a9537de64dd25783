package draftstore

import "strconv"

func formatVersion(v int64) string {
	return strconv.FormatInt(v, 10)
}
