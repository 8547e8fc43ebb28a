package coords

import (
	"strconv"
)

/*
FormatValue renders a coordinate value as text. With decimals < 0 the shortest
representation that round-trips the exact float64 is produced. With decimals >= 0
the value is truncated to that many fraction digits, then trailing zeros and a
trailing decimal point are trimmed, so decimals=2 renders 10.10 as "10.1" and
decimals=0 renders 30.7 as "31".
*/
func FormatValue(value float64, decimals int) string {
	if decimals < 0 {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	text := strconv.FormatFloat(value, 'f', decimals, 64)
	return trimFraction(text)
}

// AppendValue is FormatValue appending to dst without intermediate strings.
func AppendValue(dst []byte, value float64, decimals int) []byte {
	if decimals < 0 {
		return strconv.AppendFloat(dst, value, 'f', -1, 64)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, value, 'f', decimals, 64)
	trimmed := trimFraction(string(dst[start:]))
	return append(dst[:start], trimmed...)
}

func trimFraction(text string) string {
	dot := -1
	for index := 0; index < len(text); index++ {
		if text[index] == '.' {
			dot = index
			break
		}
	}
	if dot < 0 {
		return text
	}

	end := len(text)
	for end > dot+1 && text[end-1] == '0' {
		end--
	}
	if end == dot+1 {
		end = dot
	}
	return text[:end]
}
