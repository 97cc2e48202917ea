package utils

// UniqueUint removes duplicate values from a slice of uints, preserving order.
func UniqueUint(slice []uint) []uint {
	keys := make(map[uint]bool)
	list := []uint{}
	for _, entry := range slice {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

// ChunkUint splits ids into consecutive chunks of at most size elements.
// Used by bulk mutations to keep query parameter lists bounded.
func ChunkUint(ids []uint, size int) [][]uint {
	if size <= 0 {
		size = 1
	}
	var chunks [][]uint
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
