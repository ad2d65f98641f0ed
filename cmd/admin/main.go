// The admin panel as a subcommand CLI: tenant CRUD, analytics dashboard,
// support tickets and subscription billing. Permission checks here are UX
// gating only; the backend enforces every one of them again.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"qrdine/internal/api"
	"qrdine/internal/config"
	"qrdine/internal/display"
	"qrdine/internal/models"
	"qrdine/internal/session"
	"qrdine/pkg/logger"
)

const usage = `usage: admin <command> [args]

  login -email <e> -password <p>   authenticate and store the session
  logout                           clear the stored session
  whoami                           show the signed-in user
  branch set <id> | branch clear   select the branch scope for all queries

  menu|tables|groups|branches|roles|users|staff|ingredients
      list
      add -json '<entity json>'
      update <id> -json '<entity json>'
      delete <id>

  analytics                        render the full dashboard
  tickets list | new <subject> <message> | show <id> | reply <id> <message>
  billing create <plan> | verify <order-id> <payment-id> <signature>
`

type app struct {
	ctx    context.Context
	cfg    *config.Config
	log    *zap.Logger
	sess   *session.Session
	client *api.Client
}

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

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
		fmt.Println("Session expired. Run: admin login -email <e> -password <p>")
	})

	a := &app{
		ctx:    context.Background(),
		cfg:    cfg,
		log:    zlog,
		sess:   sess,
		client: api.New(cfg.APIURL, time.Duration(cfg.HTTPTimeout)*time.Second, sess, zlog),
	}

	cmd, args := os.Args[1], os.Args[2:]
	if err := a.run(cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(args)
	case "logout":
		a.sess.Logout()
		fmt.Println("logged out")
		return nil
	case "whoami":
		user, err := a.client.Me(a.ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%s <%s> company=%d branch=%d\n", user.Name, user.Email, user.CompanyID, a.sess.BranchID())
		return nil
	case "branch":
		return a.branch(args)
	case "menu":
		return a.crud(args, models.FeatureMenu, menuOps{a})
	case "tables":
		return a.crud(args, models.FeatureTables, tableOps{a})
	case "groups":
		return a.crud(args, models.FeatureTables, groupOps{a})
	case "branches":
		return a.crud(args, models.FeatureBranches, branchOps{a})
	case "roles":
		return a.crud(args, models.FeatureRoles, roleOps{a})
	case "users":
		return a.crud(args, models.FeatureUsers, userOps{a, false})
	case "staff":
		return a.crud(args, models.FeatureStaff, userOps{a, true})
	case "ingredients":
		return a.crud(args, models.FeatureIngredients, ingredientOps{a})
	case "analytics":
		return a.analytics()
	case "tickets":
		return a.tickets(args)
	case "billing":
		return a.billing(args)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		return fmt.Errorf("email and password are required")
	}
	user, err := a.client.Login(a.ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", user.Name)
	return nil
}

func (a *app) branch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: branch set <id> | branch clear")
	}
	switch args[0] {
	case "set":
		if len(args) < 2 {
			return fmt.Errorf("usage: branch set <id>")
		}
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("bad branch id: %w", err)
		}
		if err := a.sess.SetBranch(uint(id)); err != nil {
			return err
		}
		fmt.Println("branch selected:", id)
	case "clear":
		if err := a.sess.ClearBranch(); err != nil {
			return err
		}
		fmt.Println("branch selection cleared (all branches)")
	default:
		return fmt.Errorf("usage: branch set <id> | branch clear")
	}
	return nil
}

// entityOps is one admin CRUD surface.
type entityOps interface {
	list() error
	add(raw string) error
	update(id uint, raw string) error
	remove(id uint) error
}

func (a *app) crud(args []string, feature string, ops entityOps) error {
	if !a.sess.User().Can(feature) {
		fmt.Printf("note: your role does not show the %s panel; the server may reject this\n", feature)
	}
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		return ops.list()
	case "add":
		return ops.add(jsonArg(args[1:]))
	case "update":
		if len(args) < 2 {
			return fmt.Errorf("usage: update <id> -json '<entity>'")
		}
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("bad id: %w", err)
		}
		return ops.update(uint(id), jsonArg(args[2:]))
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: delete <id>")
		}
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("bad id: %w", err)
		}
		return ops.remove(uint(id))
	default:
		return fmt.Errorf("unknown action %q (want list|add|update|delete)", args[0])
	}
}

func jsonArg(args []string) string {
	fs := flag.NewFlagSet("entity", flag.ExitOnError)
	raw := fs.String("json", "{}", "entity as JSON")
	fs.Parse(args)
	return *raw
}

func decode[T any](raw string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, fmt.Errorf("bad entity JSON: %w", err)
	}
	return v, nil
}

type menuOps struct{ *app }

func (o menuOps) list() error {
	items, err := o.client.ListMenu(o.ctx, api.MenuFilter{})
	if err != nil {
		return err
	}
	display.Menu(os.Stdout, items, "INR")
	return nil
}

func (o menuOps) add(raw string) error {
	item, err := decode[models.MenuItem](raw)
	if err != nil {
		return err
	}
	created, err := o.client.CreateMenuItem(o.ctx, item)
	if err != nil {
		return err
	}
	fmt.Println("created menu item", created.ID)
	return nil
}

func (o menuOps) update(id uint, raw string) error {
	item, err := decode[models.MenuItem](raw)
	if err != nil {
		return err
	}
	item.ID = id
	if _, err := o.client.UpdateMenuItem(o.ctx, item); err != nil {
		return err
	}
	fmt.Println("updated menu item", id)
	return nil
}

func (o menuOps) remove(id uint) error {
	if err := o.client.DeleteMenuItem(o.ctx, id); err != nil {
		return err
	}
	fmt.Println("deleted menu item", id)
	return nil
}

type tableOps struct{ *app }

func (o tableOps) list() error {
	tables, err := o.client.ListTables(o.ctx)
	if err != nil {
		return err
	}
	display.Tables(os.Stdout, tables)
	return nil
}

func (o tableOps) add(raw string) error {
	t, err := decode[models.Table](raw)
	if err != nil {
		return err
	}
	created, err := o.client.CreateTable(o.ctx, t)
	if err != nil {
		return err
	}
	user := o.sess.User()
	var companyID uint
	if user != nil {
		companyID = user.CompanyID
	}
	fmt.Println("created table", created.ID)
	fmt.Println("QR deep link:", api.QRPayload(o.cfg.APIURL, *created, companyID))
	return nil
}

func (o tableOps) update(id uint, raw string) error {
	t, err := decode[models.Table](raw)
	if err != nil {
		return err
	}
	t.ID = id
	if _, err := o.client.UpdateTable(o.ctx, t); err != nil {
		return err
	}
	fmt.Println("updated table", id)
	return nil
}

func (o tableOps) remove(id uint) error {
	if err := o.client.DeleteTable(o.ctx, id); err != nil {
		return err
	}
	fmt.Println("deleted table", id)
	return nil
}

type groupOps struct{ *app }

func (o groupOps) list() error {
	groups, err := o.client.ListTableGroups(o.ctx)
	if err != nil {
		return err
	}
	for _, g := range groups {
		fmt.Printf("  %d  %s\n", g.ID, g.Name)
	}
	return nil
}

func (o groupOps) add(raw string) error {
	g, err := decode[models.TableGroup](raw)
	if err != nil {
		return err
	}
	created, err := o.client.CreateTableGroup(o.ctx, g.Name)
	if err != nil {
		return err
	}
	fmt.Println("created group", created.ID)
	return nil
}

func (o groupOps) update(uint, string) error {
	return fmt.Errorf("groups have no update operation")
}

func (o groupOps) remove(id uint) error {
	if err := o.client.DeleteTableGroup(o.ctx, id); err != nil {
		return err
	}
	fmt.Println("deleted group", id)
	return nil
}

type branchOps struct{ *app }

func (o branchOps) list() error {
	branches, err := o.client.ListBranches(o.ctx)
	if err != nil {
		return err
	}
	display.Branches(os.Stdout, branches)
	return nil
}

func (o branchOps) add(raw string) error {
	b, err := decode[models.Branch](raw)
	if err != nil {
		return err
	}
	created, err := o.client.CreateBranch(o.ctx, b)
	if err != nil {
		return err
	}
	fmt.Println("created branch", created.ID)
	return nil
}

func (o branchOps) update(id uint, raw string) error {
	b, err := decode[models.Branch](raw)
	if err != nil {
		return err
	}
	b.ID = id
	if _, err := o.client.UpdateBranch(o.ctx, b); err != nil {
		return err
	}
	fmt.Println("updated branch", id)
	return nil
}

func (o branchOps) remove(id uint) error {
	if err := o.client.DeleteBranch(o.ctx, id); err != nil {
		return err
	}
	fmt.Println("deleted branch", id)
	return nil
}

type roleOps struct{ *app }

func (o roleOps) list() error {
	roles, err := o.client.ListRoles(o.ctx)
	if err != nil {
		return err
	}
	for _, r := range roles {
		fmt.Printf("  %d  %s  %v\n", r.ID, r.Name, r.Permissions)
	}
	return nil
}

func (o roleOps) add(raw string) error {
	r, err := decode[models.Role](raw)
	if err != nil {
		return err
	}
	created, err := o.client.CreateRole(o.ctx, r)
	if err != nil {
		return err
	}
	fmt.Println("created role", created.ID)
	return nil
}

func (o roleOps) update(id uint, raw string) error {
	r, err := decode[models.Role](raw)
	if err != nil {
		return err
	}
	r.ID = id
	if _, err := o.client.UpdateRole(o.ctx, r); err != nil {
		return err
	}
	fmt.Println("updated role", id)
	return nil
}

func (o roleOps) remove(id uint) error {
	if err := o.client.DeleteRole(o.ctx, id); err != nil {
		return err
	}
	fmt.Println("deleted role", id)
	return nil
}

type userOps struct {
	*app
	staff bool
}

func (o userOps) list() error {
	var (
		users []models.User
		err   error
	)
	if o.staff {
		users, err = o.client.ListStaff(o.ctx)
	} else {
		users, err = o.client.ListUsers(o.ctx)
	}
	if err != nil {
		return err
	}
	display.Users(os.Stdout, users)
	return nil
}

func (o userOps) add(raw string) error {
	u, err := decode[models.User](raw)
	if err != nil {
		return err
	}
	var created *models.User
	if o.staff {
		created, err = o.client.CreateStaff(o.ctx, u)
	} else {
		created, err = o.client.CreateUser(o.ctx, u)
	}
	if err != nil {
		return err
	}
	fmt.Println("created user", created.ID)
	return nil
}

func (o userOps) update(id uint, raw string) error {
	u, err := decode[models.User](raw)
	if err != nil {
		return err
	}
	u.ID = id
	if o.staff {
		_, err = o.client.UpdateStaff(o.ctx, u)
	} else {
		_, err = o.client.UpdateUser(o.ctx, u)
	}
	if err != nil {
		return err
	}
	fmt.Println("updated user", id)
	return nil
}

func (o userOps) remove(id uint) error {
	var err error
	if o.staff {
		err = o.client.DeleteStaff(o.ctx, id)
	} else {
		err = o.client.DeleteUser(o.ctx, id)
	}
	if err != nil {
		return err
	}
	fmt.Println("deleted user", id)
	return nil
}

type ingredientOps struct{ *app }

func (o ingredientOps) list() error {
	ings, err := o.client.ListIngredients(o.ctx)
	if err != nil {
		return err
	}
	display.Ingredients(os.Stdout, ings)
	return nil
}

func (o ingredientOps) add(raw string) error {
	ing, err := decode[models.Ingredient](raw)
	if err != nil {
		return err
	}
	created, err := o.client.CreateIngredient(o.ctx, ing)
	if err != nil {
		return err
	}
	fmt.Println("created ingredient", created.ID)
	return nil
}

func (o ingredientOps) update(id uint, raw string) error {
	ing, err := decode[models.Ingredient](raw)
	if err != nil {
		return err
	}
	ing.ID = id
	if _, err := o.client.UpdateIngredient(o.ctx, ing); err != nil {
		return err
	}
	fmt.Println("updated ingredient", id)
	return nil
}

func (o ingredientOps) remove(id uint) error {
	if err := o.client.DeleteIngredient(o.ctx, id); err != nil {
		return err
	}
	fmt.Println("deleted ingredient", id)
	return nil
}

func (a *app) analytics() error {
	dash, err := a.client.FetchDashboard(a.ctx)
	if err != nil {
		// Partial dashboards still render; say which sections failed.
		fmt.Fprintln(os.Stderr, "some sections failed:", err)
	}
	if dash != nil {
		display.Dashboard(os.Stdout, dash)
	}
	return nil
}

func (a *app) tickets(args []string) error {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		tickets, err := a.client.ListTickets(a.ctx)
		if err != nil {
			return err
		}
		display.Tickets(os.Stdout, tickets)
		return nil
	case "new":
		if len(args) < 3 {
			return fmt.Errorf("usage: tickets new <subject> <message>")
		}
		t, err := a.client.CreateTicket(a.ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Println("opened ticket", t.ID)
		return nil
	case "show":
		if len(args) < 2 {
			return fmt.Errorf("usage: tickets show <id>")
		}
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("bad ticket id: %w", err)
		}
		t, err := a.client.GetTicket(a.ctx, uint(id))
		if err != nil {
			return err
		}
		fmt.Printf("#%d %s [%s]\n", t.ID, t.Subject, t.Status)
		for _, m := range t.Messages {
			fmt.Printf("  [%s] %s: %s\n", m.CreatedAt.Local().Format("01-02 15:04"), m.SenderRole, m.Message)
		}
		return nil
	case "reply":
		if len(args) < 3 {
			return fmt.Errorf("usage: tickets reply <id> <message>")
		}
		id, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("bad ticket id: %w", err)
		}
		if _, err := a.client.ReplyTicket(a.ctx, uint(id), args[2]); err != nil {
			return err
		}
		fmt.Println("reply sent")
		return nil
	default:
		return fmt.Errorf("unknown tickets action %q", args[0])
	}
}

func (a *app) billing(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: billing create <plan> | billing verify <order-id> <payment-id> <signature>")
	}
	switch args[0] {
	case "create":
		if len(args) < 2 {
			return fmt.Errorf("usage: billing create <plan>")
		}
		order, err := a.client.CreatePaymentOrder(a.ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("payment order %s: %.2f %s (%s)\n", order.OrderID, order.Amount, order.Currency, order.Plan)
		return nil
	case "verify":
		if len(args) < 4 {
			return fmt.Errorf("usage: billing verify <order-id> <payment-id> <signature>")
		}
		result, err := a.client.VerifyPayment(a.ctx, api.PaymentVerification{
			OrderID:   args[1],
			PaymentID: args[2],
			Signature: args[3],
		})
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	default:
		return fmt.Errorf("unknown billing action %q", args[0])
	}
}
