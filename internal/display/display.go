// Package display renders entity lists as terminal tables for the CLIs.
package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"qrdine/internal/api"
	"qrdine/internal/models"
)

var (
	pendingColor   = color.New(color.FgYellow)
	preparingColor = color.New(color.FgCyan)
	readyColor     = color.New(color.FgGreen)
	deliveredColor = color.New(color.FgHiBlack)
	cancelledColor = color.New(color.FgRed)
)

func statusCell(s models.OrderStatus) string {
	switch s {
	case models.OrderPending:
		return pendingColor.Sprint(s)
	case models.OrderPreparing:
		return preparingColor.Sprint(s)
	case models.OrderReady:
		return readyColor.Sprint(s)
	case models.OrderDelivered:
		return deliveredColor.Sprint(s)
	case models.OrderCancelled:
		return cancelledColor.Sprint(s)
	}
	return string(s)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Orders renders the FIFO queue, oldest first.
func Orders(w io.Writer, orders []models.Order) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"ID", "Table", "Status", "Items", "Total", "Placed"})
	for _, o := range orders {
		items := ""
		for i, it := range o.Items {
			if i > 0 {
				items += ", "
			}
			items += fmt.Sprintf("%dx %s", it.Quantity, it.ItemName)
			if it.ItemStatus == models.ItemCancelled {
				items += " (cancelled)"
			}
		}
		table.Append([]string{
			strconv.FormatUint(uint64(o.ID), 10),
			strconv.Itoa(o.TableNumber),
			statusCell(o.OrderStatus),
			items,
			money(o.Total) + " " + o.Currency,
			o.CreatedAt.Local().Format("15:04:05"),
		})
	}
	table.Render()
}

func Menu(w io.Writer, items []models.MenuItem, currency string) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"ID", "Name", "Category", "Price", "Available"})
	for _, m := range items {
		avail := "yes"
		if !m.IsAvailable {
			avail = cancelledColor.Sprint("no")
		}
		table.Append([]string{
			strconv.FormatUint(uint64(m.ID), 10),
			m.Name,
			m.Category,
			money(m.Price(currency)) + " " + currency,
			avail,
		})
	}
	table.Render()
}

func Tables(w io.Writer, tables []models.Table) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"ID", "Number", "Name", "Group", "Branch"})
	for _, t := range tables {
		table.Append([]string{
			strconv.FormatUint(uint64(t.ID), 10),
			strconv.Itoa(t.TableNumber),
			t.TableName,
			strconv.FormatUint(uint64(t.GroupID), 10),
			strconv.FormatUint(uint64(t.BranchID), 10),
		})
	}
	table.Render()
}

func Branches(w io.Writer, branches []models.Branch) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"ID", "Name", "Address", "Manager", "Active"})
	for _, b := range branches {
		active := "yes"
		if !b.IsActive {
			active = "no"
		}
		table.Append([]string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.Name,
			b.Address,
			b.ManagerName,
			active,
		})
	}
	table.Render()
}

func Ingredients(w io.Writer, ings []models.Ingredient) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"ID", "Name", "Quantity", "Threshold", "Stock"})
	for _, ing := range ings {
		stock := "ok"
		if ing.LowStock() {
			stock = cancelledColor.Sprint("LOW")
		}
		table.Append([]string{
			strconv.FormatUint(uint64(ing.ID), 10),
			ing.Name,
			fmt.Sprintf("%g %s", ing.Quantity, ing.Unit),
			fmt.Sprintf("%g %s", ing.Threshold, ing.Unit),
			stock,
		})
	}
	table.Render()
}

func Users(w io.Writer, users []models.User) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"ID", "Name", "Email", "Phone", "Role"})
	for _, u := range users {
		table.Append([]string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Name,
			u.Email,
			u.Phone,
			strconv.FormatUint(uint64(u.RoleID), 10),
		})
	}
	table.Render()
}

func Tickets(w io.Writer, tickets []models.SupportTicket) {
	table := tablewriter.NewTable(w)
	table.Header([]string{"ID", "Subject", "Status", "Messages", "Updated"})
	for _, t := range tickets {
		table.Append([]string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Subject,
			string(t.Status),
			strconv.Itoa(len(t.Messages)),
			t.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}

// Dashboard renders every analytics section the admin page shows.
func Dashboard(w io.Writer, dash *api.Dashboard) {
	fmt.Fprintf(w, "Revenue %s | Orders %d | Avg order %s | Active tables %d\n\n",
		money(dash.Summary.TotalRevenue), dash.Summary.TotalOrders,
		money(dash.Summary.AvgOrderValue), dash.Summary.ActiveTables)

	fmt.Fprintln(w, "Revenue by day")
	rev := tablewriter.NewTable(w)
	rev.Header([]string{"Date", "Revenue", "Orders"})
	for _, p := range dash.Revenue {
		rev.Append([]string{p.Date, money(p.Revenue), strconv.Itoa(p.Orders)})
	}
	rev.Render()

	fmt.Fprintln(w, "Top items")
	top := tablewriter.NewTable(w)
	top.Header([]string{"Item", "Qty", "Revenue"})
	for _, t := range dash.TopItems {
		top.Append([]string{t.ItemName, strconv.Itoa(t.Quantity), money(t.Revenue)})
	}
	top.Render()

	fmt.Fprintln(w, "Categories")
	cats := tablewriter.NewTable(w)
	cats.Header([]string{"Category", "Orders", "Revenue"})
	for _, p := range dash.Categories {
		cats.Append([]string{p.Category, strconv.Itoa(p.Orders), money(p.Revenue)})
	}
	cats.Render()

	fmt.Fprintln(w, "Payment methods")
	pay := tablewriter.NewTable(w)
	pay.Header([]string{"Method", "Count", "Revenue"})
	for _, m := range dash.PaymentMethods {
		pay.Append([]string{m.Method, strconv.Itoa(m.Count), money(m.Revenue)})
	}
	pay.Render()

	fmt.Fprintln(w, "Tables")
	tab := tablewriter.NewTable(w)
	tab.Header([]string{"Table", "Orders", "Revenue"})
	for _, t := range dash.Tables {
		tab.Append([]string{strconv.Itoa(t.TableNumber), strconv.Itoa(t.Orders), money(t.Revenue)})
	}
	tab.Render()

	fmt.Fprintf(w, "Retention: %d new, %d returning (%.1f%%)\n",
		dash.Retention.NewCustomers, dash.Retention.ReturningCustomers, dash.Retention.RetentionRate)
}
