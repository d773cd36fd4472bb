package catalog

// index is the category tree derived from a store. It is built once per
// store; stores never change, so it is never invalidated.
type index struct {
	mains []string
	subs  map[string][]string
}

func newIndex(templates []Template) *index {
	idx := &index{subs: make(map[string][]string)}
	seenMain := make(map[string]struct{})
	seenSub := make(map[Category]struct{})

	for _, t := range templates {
		main := t.Category.Main
		if _, ok := seenMain[main]; !ok {
			seenMain[main] = struct{}{}
			idx.mains = append(idx.mains, main)
		}

		if t.Category.Sub == "" {
			continue
		}
		if _, ok := seenSub[t.Category]; ok {
			continue
		}
		seenSub[t.Category] = struct{}{}
		idx.subs[main] = append(idx.subs[main], t.Category.Sub)
	}

	return idx
}

func (idx *index) mainCategories() []string {
	out := make([]string, len(idx.mains))
	copy(out, idx.mains)
	return out
}

func (idx *index) subCategories(main string) []string {
	subs := idx.subs[main]
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}
