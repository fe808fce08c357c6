package viewer

// Action is a state mutation understood by Reduce. The set is closed.
type Action interface {
	isAction()
}

// SetVisible shows or hides the viewer. Any running transition ends.
type SetVisible struct {
	Visible bool
}

// SetActiveIndex selects an item and marks its load as owed.
type SetActiveIndex struct {
	Index int
}

// Field selects which parts of Values an Update copies.
type Field uint16

const (
	FieldGeometry Field = 1 << iota
	FieldNatural
	FieldLoading
	FieldLoadFailed
	FieldPendingIndexLoad
	FieldTransition
)

// Update copies the selected fields of Values into the state.
type Update struct {
	Fields Field
	Values State
}

// Clear restores default geometry. Visibility and the active index survive.
type Clear struct {
	Scale float64
}

// SetDocumentBusy raises or lowers the document busy flag.
type SetDocumentBusy struct {
	Busy bool
}

func (SetVisible) isAction()      {}
func (SetActiveIndex) isAction()  {}
func (Update) isAction()          {}
func (Clear) isAction()           {}
func (SetDocumentBusy) isAction() {}

// Patch helpers keep call sites short.

func geometryUpdate(g Geometry) Update {
	return Update{Fields: FieldGeometry, Values: State{Geometry: g}}
}

func loadingUpdate(loading, failed bool) Update {
	return Update{
		Fields: FieldLoading | FieldLoadFailed,
		Values: State{Loading: loading, LoadFailed: failed},
	}
}
