package diff

// Differ reports which field messages changed between two error maps.
type Differ struct{}

// Diff returns the fields whose message differs in after. A field that
// stopped failing maps to "".
func (d *Differ) Diff(before, after map[string]string) map[string]string {
	delta := map[string]string{}
	for k, v := range after {
		if before[k] != v {
			delta[k] = v
		}
	}
	for k := range before {
		if _, ok := after[k]; !ok {
			delta[k] = ""
		}
	}
	return delta
}
