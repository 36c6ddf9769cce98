package common

// Page is one of the console's top-level views.
type Page int

const (
	DashboardPage Page = iota
	PunishmentsPage
	ReportsPage
	ModeratorsPage
)

// Pages lists the navigation order.
var Pages = []Page{DashboardPage, PunishmentsPage, ReportsPage, ModeratorsPage}

func (p Page) String() string {
	switch p {
	case DashboardPage:
		return "Dashboard"
	case PunishmentsPage:
		return "Punishments"
	case ReportsPage:
		return "Reports"
	case ModeratorsPage:
		return "Moderators"
	}
	panic("unreachable page")
}

func (p Page) Next() Page {
	return Pages[(int(p)+1)%len(Pages)]
}

func (p Page) Prev() Page {
	return Pages[(int(p)+len(Pages)-1)%len(Pages)]
}

// PageForKey maps the number keys 1-4 to pages.
func PageForKey(key string) (Page, bool) {
	switch key {
	case "1":
		return DashboardPage, true
	case "2":
		return PunishmentsPage, true
	case "3":
		return ReportsPage, true
	case "4":
		return ModeratorsPage, true
	}
	return 0, false
}

// ModalKind identifies the overlay currently shown, if any.
type ModalKind int

const (
	NoModal ModalKind = iota
	PunishmentModal
	ReportModal
	CreateModal
)
