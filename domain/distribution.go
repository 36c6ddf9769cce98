package domain

// TypeCount is one slice of the punishment distribution. Label tells apart
// types the console does not know, which all share TypeUnknown.
type TypeCount struct {
	Type  PunishmentType
	Label string
	Count int
}

// Distribution counts punishments per type label in first-seen order.
func Distribution(ps []Punishment) []TypeCount {
	var out []TypeCount
	index := make(map[string]int)
	for _, p := range ps {
		label := p.TypeLabel()
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, TypeCount{Type: p.Type, Label: label})
		}
		out[i].Count++
	}
	return out
}
