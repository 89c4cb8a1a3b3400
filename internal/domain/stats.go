package domain

import (
	"math"
	"sort"
)

// FolderStat is a folder with its word count
type FolderStat struct {
	ID        string
	Name      string
	WordCount int
}

// Stats holds aggregate vocabulary numbers
type Stats struct {
	TotalFolders     int
	TotalWords       int
	AveragePerFolder int
	Largest          *FolderStat
	Smallest         *FolderStat
	Folders          []FolderStat
}

// NewStats computes statistics over the given folders
func NewStats(folders []Folder) Stats {
	stats := Stats{
		TotalFolders: len(folders),
		Folders:      make([]FolderStat, 0, len(folders)),
	}

	for _, f := range folders {
		stats.TotalWords += len(f.Words)
		stats.Folders = append(stats.Folders, FolderStat{ID: f.ID, Name: f.Name, WordCount: len(f.Words)})
	}

	if stats.TotalFolders == 0 {
		return stats
	}

	stats.AveragePerFolder = int(math.Round(float64(stats.TotalWords) / float64(stats.TotalFolders)))

	// Largest first, ties keep insertion order
	sorted := make([]FolderStat, len(stats.Folders))
	copy(sorted, stats.Folders)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WordCount > sorted[j].WordCount
	})

	largest := sorted[0]
	smallest := sorted[len(sorted)-1]
	stats.Largest = &largest
	stats.Smallest = &smallest

	return stats
}
