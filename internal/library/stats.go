package library

// Stats summarizes the library contents.
type Stats struct {
	Total         int
	Read          int
	Rated         int
	AverageRating float64
}

// Stats aggregates counts over the current library. The average covers
// rated books only; rating 0 means unrated.
func (m *Manager) Stats() (Stats, error) {
	books, err := m.store.LoadLibrary()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(books)}
	ratingSum := 0
	for _, b := range books {
		if b.Read {
			stats.Read++
		}
		if b.Rating > 0 {
			stats.Rated++
			ratingSum += b.Rating
		}
	}
	if stats.Rated > 0 {
		stats.AverageRating = float64(ratingSum) / float64(stats.Rated)
	}
	return stats, nil
}
