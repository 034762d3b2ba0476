package session

// Document is the shared state of one room: last-write-wins per field.
type Document struct {
	Code     string
	Language string
}

// Directory maps room ids to their latest document state. Entries are created
// lazily on the first update for a room, never on join, and removed when the
// room empties. Like Registry, access is serialized by the Coordinator.
type Directory struct {
	rooms map[string]Document
}

func NewDirectory() *Directory {
	return &Directory{rooms: make(map[string]Document)}
}

func (d *Directory) Get(roomID string) (Document, bool) {
	doc, ok := d.rooms[roomID]
	return doc, ok
}

func (d *Directory) SetCode(roomID, code string) {
	doc := d.rooms[roomID]
	doc.Code = code
	d.rooms[roomID] = doc
}

func (d *Directory) SetLanguage(roomID, language string) {
	doc := d.rooms[roomID]
	doc.Language = language
	d.rooms[roomID] = doc
}

func (d *Directory) Delete(roomID string) {
	delete(d.rooms, roomID)
}

func (d *Directory) Len() int { return len(d.rooms) }
