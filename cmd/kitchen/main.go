// The kitchen display: a live FIFO queue of open orders fed by the event
// socket, with a polling backstop, driven by simple line commands for status
// transitions.
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
	"sync"
	"time"

	"go.uber.org/zap"

	"qrdine/internal/api"
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
		email    = flag.String("email", "", "login email (uses stored session when empty)")
		password = flag.String("password", "", "login password")
		branchID = flag.Uint("branch", 0, "branch to watch (0 keeps the stored selection)")
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
		fmt.Println("Session expired. Please log in again.")
		os.Exit(1)
	})

	client := api.New(cfg.APIURL, time.Duration(cfg.HTTPTimeout)*time.Second, sess, zlog)
	ctx := context.Background()

	if *email != "" {
		if _, err := client.Login(ctx, *email, *password); err != nil {
			zlog.Fatal("login failed", zap.Error(err))
		}
	}
	if !sess.Authenticated() {
		fmt.Println("Not logged in. Pass -email and -password.")
		os.Exit(1)
	}
	if *branchID != 0 {
		if err := sess.SetBranch(*branchID); err != nil {
			zlog.Fatal("failed to persist branch selection", zap.Error(err))
		}
	}

	feed := orderfeed.New(sess.BranchID())

	var renderMu sync.Mutex
	render := func() {
		renderMu.Lock()
		defer renderMu.Unlock()
		fmt.Print("\033[H\033[2J")
		fmt.Println("KITCHEN QUEUE — commands: advance <id> | cancel <id> | refresh | quit")
		display.Orders(os.Stdout, feed.Orders())
	}

	feed.OnNew = func(o models.Order) {
		fmt.Print("\a")
	}

	reload := func() {
		orders, err := client.ListOrders(ctx, api.OrderFilter{})
		if err != nil {
			zlog.Warn("order reload failed", zap.Error(err))
			return
		}
		feed.Replace(orders)
		render()
	}
	reload()

	ch, err := realtime.Dial(ctx, cfg.APIURL, sess.Token(), realtime.Handlers{
		NewOrder: func(o models.Order) {
			if feed.ApplyNew(o) {
				render()
			}
		},
		OrderUpdated: func(o models.Order) {
			if feed.ApplyUpdate(o) {
				render()
			}
		},
		OrderStatusUpdated: func(p models.OrderStatusPatch) {
			if feed.ApplyStatusPatch(p) {
				render()
			}
		},
		AuthFailed: sess.Logout,
		Disconnected: func(err error) {
			// Polling keeps the queue converging while the socket is down.
			zlog.Warn("event socket lost, relying on polling", zap.Error(err))
		},
	}, zlog)
	if err != nil {
		zlog.Warn("event socket unavailable, relying on polling", zap.Error(err))
	} else {
		defer ch.Close()
	}

	ticker := time.NewTicker(time.Duration(cfg.PollInterval) * time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			reload()
		}
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "q":
			return
		case "refresh":
			reload()
		case "advance", "cancel":
			if len(fields) < 2 {
				fmt.Println("usage:", fields[0], "<order-id>")
				continue
			}
			id, err := strconv.ParseUint(fields[1], 10, 32)
			if err != nil {
				fmt.Println("bad order id:", fields[1])
				continue
			}
			handleTransition(ctx, client, feed, fields[0], uint(id))
			render()
		default:
			fmt.Println("unknown command:", fields[0])
		}
	}
}

// handleTransition requests the next forward status (or a cancel) and applies
// the server's confirmed order to the local list.
func handleTransition(ctx context.Context, client *api.Client, feed *orderfeed.Feed, verb string, id uint) {
	current, ok := feed.Get(id)
	if !ok {
		fmt.Println("order not on the queue:", id)
		return
	}

	var (
		updated *models.Order
		err     error
	)
	if verb == "cancel" {
		updated, err = client.CancelOrder(ctx, id)
	} else {
		next, can := current.OrderStatus.Next()
		if !can {
			fmt.Printf("order %d is already %s\n", id, current.OrderStatus)
			return
		}
		updated, err = client.UpdateOrderStatus(ctx, id, next)
	}
	if err != nil {
		fmt.Println("transition failed:", err)
		return
	}
	feed.ApplyUpdate(*updated)
}
