package entry

// Info is the display metadata for one participant entry.
type Info struct {
	EntryID    int64
	EntryName  string
	PlayerName string
}
