// The customer ordering flow: bootstrap from a QR deep link, browse the
// branch menu, build a cart, place the order and track it live until
// delivery (or cancellation).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"qrdine/internal/api"
	"qrdine/internal/cart"
	"qrdine/internal/config"
	"qrdine/internal/display"
	"qrdine/internal/models"
	"qrdine/internal/orderfeed"
	"qrdine/internal/realtime"
	"qrdine/internal/session"
	"qrdine/pkg/logger"
)

func main() {
	var (
		qr       = flag.String("qr", "", "QR deep-link URL (token, table, branch_id, companyId)")
		tableNum = flag.Int("table", 0, "table number (overrides the deep link)")
		currency = flag.String("currency", "INR", "display and billing currency (INR or USD)")
		payment  = flag.String("payment", "cash", "payment method")
	)
	flag.Parse()

	cfg := config.Load()
	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer zlog.Sync()

	sess, err := session.Load(cfg.SessionFile)
	if err != nil {
		zlog.Fatal("failed to load session", zap.Error(err))
	}
	sess.OnLogout(func() {
		fmt.Println("Session expired. Scan the QR code again.")
		os.Exit(1)
	})

	table := *tableNum
	if *qr != "" {
		dl, err := session.ParseDeepLink(*qr)
		if err != nil {
			zlog.Fatal("bad QR link", zap.Error(err))
		}
		if err := sess.Bootstrap(dl); err != nil {
			zlog.Fatal("failed to apply QR link", zap.Error(err))
		}
		if table == 0 {
			table = dl.TableNumber
		}
	}
	if !sess.Authenticated() {
		fmt.Println("No session. Pass -qr with the link from your table's QR code.")
		os.Exit(1)
	}
	if table == 0 {
		fmt.Println("No table number. Pass -table or a -qr link that carries one.")
		os.Exit(1)
	}

	client := api.New(cfg.APIURL, time.Duration(cfg.HTTPTimeout)*time.Second, sess, zlog)
	ctx := context.Background()
	basket := cart.New()
	feed := orderfeed.New(sess.BranchID())
	feed.OnNew = func(o models.Order) {
		fmt.Print("\a")
	}
	feed.OnDelivered = func(o models.Order) {
		fmt.Printf("\aOrder %d delivered! Leave feedback with: feedback %d <1-5> [comment]\n", o.ID, o.ID)
	}

	ch, err := realtime.Dial(ctx, cfg.APIURL, sess.Token(), realtime.Handlers{
		NewOrder:           func(o models.Order) { feed.ApplyNew(o) },
		OrderUpdated:       func(o models.Order) { feed.ApplyUpdate(o) },
		OrderStatusUpdated: func(p models.OrderStatusPatch) { feed.ApplyStatusPatch(p) },
		AuthFailed:         sess.Logout,
	}, zlog)
	if err != nil {
		zlog.Warn("live tracking unavailable", zap.Error(err))
	} else {
		defer ch.Close()
	}

	fmt.Printf("Table %d. Commands: menu | add <id> <qty> | remove <id> | cart | place | orders | cancel <id> | cancelitem <oid> <iid> | feedback <id> <rating> [comment] | quit\n", table)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "q":
			return

		case "menu":
			items, err := client.ListMenu(ctx, api.MenuFilter{AvailableOnly: true})
			if err != nil {
				fmt.Println("menu unavailable:", err)
				continue
			}
			display.Menu(os.Stdout, items, *currency)

		case "add":
			if len(fields) < 3 {
				fmt.Println("usage: add <menu-id> <qty>")
				continue
			}
			id, err1 := strconv.ParseUint(fields[1], 10, 32)
			qty, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				fmt.Println("bad arguments")
				continue
			}
			item, err := findMenuItem(ctx, client, uint(id))
			if err != nil {
				fmt.Println(err)
				continue
			}
			basket.Add(*item, qty)
			fmt.Printf("added %dx %s (cart total %.2f %s)\n", qty, item.Name, basket.Total(*currency), *currency)

		case "remove":
			if len(fields) < 2 {
				fmt.Println("usage: remove <menu-id>")
				continue
			}
			id, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				fmt.Println("bad menu id")
				continue
			}
			basket.Remove(uint(id))
			fmt.Println("removed")

		case "cart":
			for _, l := range basket.Lines() {
				fmt.Printf("  %dx %s — %.2f %s\n", l.Quantity, l.Item.Name, l.Item.Price(*currency)*float64(l.Quantity), *currency)
			}
			fmt.Printf("total: %.2f %s\n", basket.Total(*currency), *currency)

		case "place":
			if basket.Empty() {
				fmt.Println("cart is empty")
				continue
			}
			// PlaceOrder blocks the command loop, so a second submit cannot
			// start while one is in flight. That blocking is the only
			// double-submit guard: no idempotency key travels with the order.
			order, err := client.PlaceOrder(ctx, basket.Checkout(table, sess.BranchID(), *currency, *payment))
			if err != nil {
				fmt.Println("order failed:", err)
				continue
			}
			basket.Clear()
			feed.ApplyNew(*order)
			fmt.Printf("Order %d confirmed — total %.2f %s\n", order.ID, order.Total, order.Currency)

		case "orders":
			display.Orders(os.Stdout, feed.Orders())

		case "cancel":
			if len(fields) < 2 {
				fmt.Println("usage: cancel <order-id>")
				continue
			}
			id, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				fmt.Println("bad order id")
				continue
			}
			updated, err := client.CancelOrder(ctx, uint(id))
			if err != nil {
				fmt.Println("cancel failed:", err)
				continue
			}
			feed.ApplyUpdate(*updated)
			fmt.Println("order cancelled")

		case "cancelitem":
			if len(fields) < 3 {
				fmt.Println("usage: cancelitem <order-id> <item-id>")
				continue
			}
			oid, err1 := strconv.ParseUint(fields[1], 10, 32)
			iid, err2 := strconv.ParseUint(fields[2], 10, 32)
			if err1 != nil || err2 != nil {
				fmt.Println("bad arguments")
				continue
			}
			updated, err := client.CancelOrderItem(ctx, uint(oid), uint(iid))
			if err != nil {
				fmt.Println("cancel failed:", err)
				continue
			}
			feed.ApplyUpdate(*updated)
			fmt.Println("item cancelled")

		case "feedback":
			if len(fields) < 3 {
				fmt.Println("usage: feedback <order-id> <rating 1-5> [comment]")
				continue
			}
			id, err1 := strconv.ParseUint(fields[1], 10, 32)
			rating, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil {
				fmt.Println("bad arguments")
				continue
			}
			comment := strings.Join(fields[3:], " ")
			if err := client.SubmitFeedback(ctx, uint(id), rating, comment); err != nil {
				fmt.Println("feedback failed:", err)
				continue
			}
			fmt.Println("thanks for the feedback!")

		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

func findMenuItem(ctx context.Context, client *api.Client, id uint) (*models.MenuItem, error) {
	items, err := client.ListMenu(ctx, api.MenuFilter{})
	if err != nil {
		return nil, fmt.Errorf("menu unavailable: %w", err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("no menu item with id %d", id)
}
