package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff9f0a")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu       list.Model
	stockView      table.Model
	purchaseList   list.Model
	productionList list.Model
	lowStockView   table.Model
	spinner        spinner.Model
	client         *ApiClient
	currentView    string
	error          string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Stock Levels", desc: "View current stock for every item"},
		item{title: "Purchases", desc: "View committed purchase orders"},
		item{title: "Productions", desc: "View production runs and costs"},
		item{title: "Low Stock", desc: "Items at or below their reorder threshold"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Bakehouse CLI"

	// Initialize stock view
	stockColumns := []table.Column{
		{Title: "Item", Width: 24},
		{Title: "Category", Width: 14},
		{Title: "Stock", Width: 14},
		{Title: "Avg Price", Width: 10},
	}
	stockTable := table.New(
		table.WithColumns(stockColumns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	// Initialize low-stock view
	lowColumns := []table.Column{
		{Title: "Item", Width: 24},
		{Title: "Available", Width: 12},
		{Title: "Threshold", Width: 12},
		{Title: "Unit", Width: 6},
	}
	lowTable := table.New(
		table.WithColumns(lowColumns),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	// Initialize purchase and production lists
	purchaseList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	purchaseList.Title = "Purchases"
	productionList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	productionList.Title = "Productions"

	// Initialize API client
	client := NewApiClient()

	return Model{
		mainMenu:       mainMenu,
		stockView:      stockTable,
		purchaseList:   purchaseList,
		productionList: productionList,
		lowStockView:   lowTable,
		spinner:        s,
		client:         client,
		currentView:    "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if m.currentView == "main" {
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Stock Levels":
						m.currentView = "stock"
						return m, fetchItems(m.client)
					case "Purchases":
						m.currentView = "purchases"
						return m, fetchPurchases(m.client)
					case "Productions":
						m.currentView = "productions"
						return m, fetchProductions(m.client)
					case "Low Stock":
						m.currentView = "lowstock"
						return m, fetchLowStock(m.client)
					}
				}
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
			}
		case "r":
			switch m.currentView {
			case "stock":
				return m, fetchItems(m.client)
			case "purchases":
				return m, fetchPurchases(m.client)
			case "productions":
				return m, fetchProductions(m.client)
			case "lowstock":
				return m, fetchLowStock(m.client)
			}
		}
	case itemsMsg:
		m.stockView.SetRows(stockRows(msg.items))
		return m, nil
	case purchasesMsg:
		m.purchaseList.SetItems(purchaseItems(msg.purchases))
		return m, nil
	case productionsMsg:
		m.productionList.SetItems(productionItems(msg.productions))
		return m, nil
	case lowStockMsg:
		m.lowStockView.SetRows(lowStockRows(msg.entries))
		return m, nil
	case errorMsg:
		m.error = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "stock":
		m.stockView, cmd = m.stockView.Update(msg)
	case "purchases":
		m.purchaseList, cmd = m.purchaseList.Update(msg)
	case "productions":
		m.productionList, cmd = m.productionList.Update(msg)
	case "lowstock":
		m.lowStockView, cmd = m.lowStockView.Update(msg)
	}

	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	help := "\nPress 'r' to refresh, 'esc' to go back, 'q' to quit\n"
	if m.error != "" {
		help += errorStyle.Render(m.error) + "\n"
	}

	switch m.currentView {
	case "main":
		banner := ""
		if m.client.UseMock {
			banner = warnStyle.Render("Offline - showing mock data") + "\n\n"
		}
		return docStyle.Render(banner + m.mainMenu.View())
	case "stock":
		return docStyle.Render(titleStyle.Render("Stock Levels") + "\n\n" + m.stockView.View() + help)
	case "purchases":
		return docStyle.Render(titleStyle.Render("Purchases") + "\n\n" + m.purchaseList.View() + help)
	case "productions":
		return docStyle.Render(titleStyle.Render("Productions") + "\n\n" + m.productionList.View() + help)
	case "lowstock":
		return docStyle.Render(titleStyle.Render("Low Stock") + "\n\n" + m.lowStockView.View() + help)
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type itemsMsg struct {
	items []Item
}

type purchasesMsg struct {
	purchases []Purchase
}

type productionsMsg struct {
	productions []Production
}

type lowStockMsg struct {
	entries []LowStockEntry
}

type errorMsg struct {
	err string
}

// purchaseEntry represents a purchase in the list
type purchaseEntry struct {
	title string
	desc  string
}

func (p purchaseEntry) Title() string       { return p.title }
func (p purchaseEntry) Description() string { return p.desc }
func (p purchaseEntry) FilterValue() string { return p.title }

// fetchItems retrieves items with stock from the API
func fetchItems(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		items, err := client.GetItems()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching items: %v", err)}
		}
		return itemsMsg{items: items}
	}
}

// fetchPurchases retrieves purchases from the API
func fetchPurchases(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		purchases, err := client.GetPurchases()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching purchases: %v", err)}
		}
		return purchasesMsg{purchases: purchases}
	}
}

// fetchProductions retrieves production runs from the API
func fetchProductions(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		productions, err := client.GetProductions()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching productions: %v", err)}
		}
		return productionsMsg{productions: productions}
	}
}

// fetchLowStock retrieves low-stock entries from the API
func fetchLowStock(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		entries, err := client.GetLowStock()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching low stock: %v", err)}
		}
		return lowStockMsg{entries: entries}
	}
}

// stockRows converts items to table rows
func stockRows(items []Item) []table.Row {
	rows := make([]table.Row, len(items))
	for i, it := range items {
		stock := "none"
		if it.Stock != nil {
			symbol := ""
			if it.Stock.Unit != nil {
				symbol = " " + it.Stock.Unit.Symbol
			}
			stock = fmt.Sprintf("%.2f%s", it.Stock.Quantity, symbol)
		}
		rows[i] = table.Row{it.Name, it.Category, stock, fmt.Sprintf("%.2f", it.AvgPrice)}
	}
	return rows
}

// purchaseItems converts purchases to list items
func purchaseItems(purchases []Purchase) []list.Item {
	items := make([]list.Item, len(purchases))
	for i, p := range purchases {
		supplier := "unknown supplier"
		if p.Supplier != nil {
			supplier = p.Supplier.Name
		}
		items[i] = purchaseEntry{
			title: fmt.Sprintf("%s - %s", p.Date.Format("2006-01-02"), supplier),
			desc:  fmt.Sprintf("%d lines - total %.2f", len(p.Items), p.TotalAmount),
		}
	}
	return items
}

// productionItems converts production runs to list items
func productionItems(productions []Production) []list.Item {
	items := make([]list.Item, len(productions))
	for i, p := range productions {
		recipe := "unknown recipe"
		if p.Recipe != nil {
			recipe = p.Recipe.Name
		}
		unit := ""
		if p.ProducedUnit != nil {
			unit = " " + p.ProducedUnit.Symbol
		}
		items[i] = purchaseEntry{
			title: fmt.Sprintf("%s - %s", p.Date.Format("2006-01-02"), recipe),
			desc:  fmt.Sprintf("%.0f%s - total %.2f, per unit %.2f", p.ProducedQuantity, unit, p.TotalCost, p.CostPerUnit),
		}
	}
	return items
}

// lowStockRows converts low-stock entries to table rows
func lowStockRows(entries []LowStockEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			e.Name,
			fmt.Sprintf("%.2f", e.Available),
			fmt.Sprintf("%.2f", e.Threshold),
			e.UnitSymbol,
		}
	}
	return rows
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
