package usage

// ProcessNames returns n labels: Process_A .. Process_Z, Process_AA, ...
func ProcessNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "Process_" + columnName(i)
	}
	return names
}

// columnName maps 0->A, 25->Z, 26->AA, like spreadsheet columns.
func columnName(i int) string {
	var buf [16]byte
	p := len(buf)
	for i++; i > 0; i = (i - 1) / 26 {
		p--
		buf[p] = byte('A' + (i-1)%26)
	}
	return string(buf[p:])
}
