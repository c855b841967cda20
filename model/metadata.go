package model

import "fmt"

// IndexOf returns the position of chapterId in the manifest, or -1.
func (m *NovelMetadata) IndexOf(chapterId string) int {
	for i, c := range m.Chapters {
		if c.Id == chapterId {
			return i
		}
	}
	return -1
}

// OrderMismatch describes a manifest entry whose order field disagrees with
// its position.
type OrderMismatch struct {
	Position  int
	ChapterId string
	Order     int
}

func (o OrderMismatch) String() string {
	return fmt.Sprintf("chapter %q at position %d has order %d, expected %d", o.ChapterId, o.Position, o.Order, o.Position+1)
}

// OrderMismatches lists every entry whose order is not position+1.
// Position is authoritative for navigation; this only reports drift.
func (m *NovelMetadata) OrderMismatches() []OrderMismatch {
	return CheckOrder(m.Chapters)
}

// CheckOrder is OrderMismatches over a bare chapter list.
func CheckOrder(chapters []ChapterRef) []OrderMismatch {
	var mismatches []OrderMismatch
	for i, c := range chapters {
		if c.Order != i+1 {
			mismatches = append(mismatches, OrderMismatch{Position: i, ChapterId: c.Id, Order: c.Order})
		}
	}
	return mismatches
}
