package chat

// Directory is the read-only conversation catalogue
type Directory struct {
	order []string
	byID  map[string]Conversation
}

// NewDirectory builds the catalogue from the seed; duplicate ids keep the
// first entry
func NewDirectory(seed Seed) *Directory {
	d := &Directory{byID: make(map[string]Conversation)}
	for _, conv := range seed.Conversations() {
		if _, exists := d.byID[conv.ID]; exists {
			continue
		}
		d.order = append(d.order, conv.ID)
		d.byID[conv.ID] = conv
	}
	return d
}

// Get looks a conversation up by id
func (d *Directory) Get(id string) (Conversation, error) {
	conv, ok := d.byID[id]
	if !ok {
		return Conversation{}, ErrNotFound
	}
	return conv, nil
}

// Contains reports whether id is in the catalogue
func (d *Directory) Contains(id string) bool {
	_, ok := d.byID[id]
	return ok
}

// List returns every conversation in seed order
func (d *Directory) List() []Conversation {
	list := make([]Conversation, 0, len(d.order))
	for _, id := range d.order {
		list = append(list, d.byID[id])
	}
	return list
}
