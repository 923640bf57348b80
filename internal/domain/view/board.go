package view

// SlotID names an element that displays the outcome of an action.
type SlotID string

// Result slots
const (
	SlotLogin            SlotID = "login-result"
	SlotMember           SlotID = "member-result"
	SlotMemberList       SlotID = "member-list"
	SlotEmployeeRadio    SlotID = "employee-radio-list"
	SlotAttendanceTable  SlotID = "attendance-table"
	SlotDailySummary     SlotID = "daily-summary"
	SlotMonthlySummary   SlotID = "monthly-summary"
	SlotReservation      SlotID = "reservation-result"
	SlotReservationList  SlotID = "reservation-list"
	SlotSync             SlotID = "sync-result"
	SlotSale             SlotID = "sale-result"
	SlotSaleList         SlotID = "sale-list"
	SlotTotalSales       SlotID = "total-sales-result"
	SlotEmployee         SlotID = "employee-result"
	SlotEmployeeList     SlotID = "employee-list"
	SlotReport           SlotID = "report-result"
	SlotMemberImport     SlotID = "member-import-result"
	SlotMemberImportRows SlotID = "member-import-rows"
)

// Table is a header row plus data rows, all pre-formatted as text.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Slot is the rendered content of one result element.
type Slot struct {
	Message  string
	Markdown bool // Message is markdown and is rendered to HTML
	Failed   bool
	Items    []string
	Table    *Table
	Options  []string
}

// Board holds the rendered contents of every result slot plus at most one
// pending blocking notification.
type Board struct {
	slots map[SlotID]Slot
	alert string
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{slots: make(map[SlotID]Slot)}
}

// Get returns the slot contents; a never-written slot is the zero Slot.
func (b *Board) Get(id SlotID) Slot {
	return b.slots[id]
}

// Slots returns a copy of every written slot.
func (b *Board) Slots() map[SlotID]Slot {
	out := make(map[SlotID]Slot, len(b.slots))
	for id, s := range b.slots {
		out[id] = s
	}
	return out
}

// Set replaces the slot contents.
func (b *Board) Set(id SlotID, s Slot) {
	b.slots[id] = s
}

// SetMessage writes a plain success message.
func (b *Board) SetMessage(id SlotID, msg string) {
	b.slots[id] = Slot{Message: msg}
}

// SetFailure writes a failure message.
func (b *Board) SetFailure(id SlotID, msg string) {
	b.slots[id] = Slot{Message: msg, Failed: true}
}

// SetItems replaces a list slot.
func (b *Board) SetItems(id SlotID, items []string) {
	b.slots[id] = Slot{Items: items}
}

// SetTable replaces a table slot.
func (b *Board) SetTable(id SlotID, t Table) {
	b.slots[id] = Slot{Table: &t}
}

// SetOptions replaces a selector slot.
func (b *Board) SetOptions(id SlotID, options []string) {
	b.slots[id] = Slot{Options: options}
}

// Alert queues a blocking notification, replacing any pending one.
func (b *Board) Alert(msg string) {
	b.alert = msg
}

// PendingAlert returns the queued notification, or "".
func (b *Board) PendingAlert() string {
	return b.alert
}

// DismissAlert clears the queued notification.
func (b *Board) DismissAlert() {
	b.alert = ""
}

// Reset clears every slot and the pending notification.
func (b *Board) Reset() {
	b.slots = make(map[SlotID]Slot)
	b.alert = ""
}
