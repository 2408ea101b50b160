package formatting

import "fmt"

// FormatPrice форматирует цену из копеек в рубли
func FormatPrice(kopecks int64) string {
	return fmt.Sprintf("%d.%02d ₽", kopecks/100, abs(kopecks%100))
}

// FormatPriceShort форматирует цену без копеек если они равны 0
func FormatPriceShort(kopecks int64) string {
	if kopecks%100 == 0 {
		return fmt.Sprintf("%d ₽", kopecks/100)
	}
	return FormatPrice(kopecks)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
