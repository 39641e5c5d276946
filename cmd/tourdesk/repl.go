package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tourdesk/internal/api"
	"tourdesk/internal/config"
	"tourdesk/internal/domain"
	"tourdesk/internal/modules/admin"
	"tourdesk/internal/modules/auth"
	"tourdesk/internal/modules/chat"
	"tourdesk/internal/modules/guide"
	"tourdesk/internal/modules/tourist"
	"tourdesk/internal/pkg/images"
	"tourdesk/internal/pkg/notify"
	"tourdesk/internal/pkg/validator"
	"tourdesk/internal/session"
)

// repl is the console front-end. It only parses commands, calls module
// services and prints their derived views; every rule lives in the modules.
type repl struct {
	cfg      *config.Config
	log      *zap.Logger
	client   *api.Client
	store    *session.Store
	notifier *notify.Notifier
	resolver *images.Resolver
	auth     *auth.Service

	principal *session.Principal

	in  io.Reader
	out io.Writer

	scanner *bufio.Scanner
}

func (r *repl) run() error {
	r.scanner = bufio.NewScanner(r.in)
	fmt.Fprintln(r.out, "tourdesk console. Type 'help' for commands.")

	for {
		who := "guest"
		if r.principal != nil {
			who = fmt.Sprintf("%s/%s", r.principal.DisplayName, strings.ToLower(string(r.principal.Role)))
		}
		fmt.Fprintf(r.out, "%s> ", who)

		line, ok := r.readLine()
		if !ok {
			return nil
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		ctx := context.Background()

		switch args[0] {
		case "help":
			fmt.Fprintln(r.out, "login <user> <pass> | register <name> <user> <email> <pass> | whoami | dashboard | logout | exit")
		case "login":
			if len(args) != 3 {
				fmt.Fprintln(r.out, "usage: login <user> <pass>")
				continue
			}
			r.login(ctx, args[1], args[2])
		case "register":
			if len(args) != 5 {
				fmt.Fprintln(r.out, "usage: register <name> <user> <email> <pass>")
				continue
			}
			r.register(ctx, args[1], args[2], args[3], args[4])
		case "whoami":
			if r.principal == nil {
				fmt.Fprintln(r.out, "not logged in")
			} else {
				fmt.Fprintf(r.out, "#%d %s (%s)\n", r.principal.ID, r.principal.DisplayName, r.principal.Role)
			}
		case "dashboard":
			r.enterDashboard(ctx)
		case "logout":
			if err := r.auth.Logout(); err != nil {
				fmt.Fprintln(r.out, "logout failed:", err)
				continue
			}
			r.principal = nil
		case "exit", "quit":
			return nil
		default:
			fmt.Fprintln(r.out, "unknown command; try 'help'")
		}
	}
}

func (r *repl) readLine() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.scanner.Text()), true
}

// confirm implements the yes/no gate for destructive commands.
func (r *repl) confirm(prompt string) bool {
	fmt.Fprintf(r.out, "%s [y/N] ", prompt)
	line, ok := r.readLine()
	return ok && strings.EqualFold(line, "y")
}

func (r *repl) login(ctx context.Context, username, password string) {
	p, err := r.auth.Login(ctx, auth.LoginForm{Username: username, Password: password})
	if err != nil {
		r.printError(err)
		return
	}
	r.principal = p
	fmt.Fprintf(r.out, "welcome %s; your dashboard is %s\n", p.DisplayName, auth.DashboardFor(p.Role))
}

func (r *repl) register(ctx context.Context, name, username, email, password string) {
	err := r.auth.Register(ctx, auth.RegisterForm{
		Name: name, Username: username, Email: email, Password: password,
	})
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintln(r.out, "account created; log in to continue")
}

// enterDashboard routes by role. Module constructors enforce the role guard,
// so a stale or mismatched principal bounces here without any fetch.
func (r *repl) enterDashboard(ctx context.Context) {
	if r.principal == nil {
		fmt.Fprintln(r.out, "log in first")
		return
	}

	var err error
	switch r.principal.Role {
	case domain.RoleAdmin:
		err = r.runAdmin(ctx)
	case domain.RoleGuide:
		err = r.runGuide(ctx)
	default:
		err = r.runTourist(ctx)
	}
	if err != nil {
		r.printError(err)
	}
}

// ===== admin =====

func (r *repl) runAdmin(ctx context.Context) error {
	chats := chat.NewSession(*r.principal, r.client, r.notifier, r.cfg.ChatPollEvery, r.log)
	svc, err := admin.New(r.principal, r.client, r.client, r.client, r.client,
		chats, r.notifier, r.confirm, r.log)
	if err != nil {
		return err
	}
	defer svc.SetTab(ctx, admin.TabDashboard) // stops chat polling on exit

	svc.LoadAll(ctx)
	fmt.Fprintln(r.out, "admin dashboard. 'help' lists commands, 'back' leaves.")

	for {
		fmt.Fprintf(r.out, "admin:%s> ", svc.ActiveTab())
		line, ok := r.readLine()
		if !ok {
			return nil
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Fprintln(r.out, "tab <users|tours|bookings|chats|reports|settings> | list | search <q> | status <s|ALL>")
			fmt.Fprintln(r.out, "guide <name> <user> <email> <pass> | newtour | tourstatus <id> <status>")
			fmt.Fprintln(r.out, "approve <id> | reject <id> | open <tourid> | del <user|tour|booking|review> <id>")
			fmt.Fprintln(r.out, "threads | openthread <id> | send <text> | report | back")
		case "back":
			return nil
		case "tab":
			if len(args) != 2 {
				continue
			}
			svc.SetTab(ctx, admin.Tab(args[1]))
		case "list":
			r.printAdminTab(svc)
		case "search":
			q := strings.Join(args[1:], " ")
			switch svc.ActiveTab() {
			case admin.TabUsers:
				svc.SetUserQuery(q)
			case admin.TabTours:
				svc.SetTourQuery(q)
			case admin.TabBookings:
				svc.SetBookingQuery(q)
			case admin.TabChats:
				svc.Chat.SetThreadQuery(q)
			}
			r.printAdminTab(svc)
		case "status":
			if len(args) == 2 {
				svc.SetBookingStatusFilter(args[1])
				r.printAdminTab(svc)
			}
		case "guide":
			if len(args) != 5 {
				fmt.Fprintln(r.out, "usage: guide <name> <user> <email> <pass>")
				continue
			}
			if err := svc.RegisterGuide(ctx, admin.GuideForm{
				Name: args[1], Username: args[2], Email: args[3], Password: args[4],
			}); err != nil {
				r.printError(err)
			}
		case "newtour":
			form, err := r.promptTourForm()
			if err != nil {
				r.printError(err)
				continue
			}
			if err := svc.CreateTour(ctx, admin.TourForm(*form)); err != nil {
				r.printError(err)
			}
		case "tourstatus":
			if len(args) != 3 {
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				continue
			}
			if err := svc.UpdateTourStatus(ctx, id, domain.TourStatus(args[2])); err != nil {
				r.printError(err)
			}
		case "approve", "reject":
			if len(args) != 2 {
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				continue
			}
			if args[0] == "approve" {
				err = svc.ApproveBooking(ctx, id)
			} else {
				err = svc.RejectBooking(ctx, id)
			}
			if err != nil {
				r.printError(err)
			}
		case "open":
			if len(args) != 2 {
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				continue
			}
			for _, t := range svc.FilteredTours() {
				if t.ID == id {
					svc.OpenTourDetails(ctx, t)
					r.printReviews(svc.TourReviews())
					break
				}
			}
		case "del":
			if len(args) != 3 {
				fmt.Fprintln(r.out, "usage: del <user|tour|booking|review> <id>")
				continue
			}
			id, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				continue
			}
			switch args[1] {
			case "user":
				err = svc.DeleteUser(ctx, id)
			case "tour":
				err = svc.DeleteTour(ctx, id)
			case "booking":
				err = svc.DeleteBooking(ctx, id)
			case "review":
				err = svc.DeleteReview(ctx, id)
			}
			if err != nil {
				r.printError(err)
			}
		case "threads":
			for _, th := range svc.Chat.FilteredThreads() {
				fmt.Fprintf(r.out, "#%d %s — %s\n", th.ID, th.Title, th.LastMessage)
			}
		case "openthread":
			if len(args) != 2 {
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				continue
			}
			for _, th := range svc.Chat.FilteredThreads() {
				if th.ID == id {
					svc.Chat.Select(ctx, th)
					for _, m := range svc.Chat.Messages() {
						fmt.Fprintf(r.out, "  [%d] %s\n", m.SenderID, m.Text)
					}
					break
				}
			}
		case "send":
			svc.Chat.Send(ctx, strings.Join(args[1:], " "))
		case "report":
			svc.ExportReport()
		default:
			fmt.Fprintln(r.out, "unknown command; try 'help'")
		}
	}
}

func (r *repl) printAdminTab(svc *admin.Service) {
	switch svc.ActiveTab() {
	case admin.TabUsers:
		for _, u := range svc.FilteredUsers() {
			fmt.Fprintf(r.out, "#%d %s <%s> %s\n", u.ID, u.Name, u.Email, u.Role)
		}
	case admin.TabTours:
		r.printTours(svc.FilteredTours())
	case admin.TabBookings:
		r.printBookings(svc.FilteredBookings())
	case admin.TabChats:
		for _, th := range svc.Chat.FilteredThreads() {
			fmt.Fprintf(r.out, "#%d %s — %s\n", th.ID, th.Title, th.LastMessage)
		}
	default:
		fmt.Fprintf(r.out, "%d users, %d tours, %d bookings (%d pending)\n",
			svc.TotalUsers(), svc.TotalTours(), svc.TotalBookings(), svc.PendingBookings())
	}
}

// ===== guide =====

func (r *repl) runGuide(ctx context.Context) error {
	svc, err := guide.New(r.principal, r.client, r.client, r.client,
		r.notifier, r.confirm, r.log)
	if err != nil {
		return err
	}

	svc.LoadAll(ctx)
	fmt.Fprintln(r.out, "guide dashboard. 'help' lists commands, 'back' leaves.")

	for {
		fmt.Fprintf(r.out, "guide:%s> ", svc.ActiveTab())
		line, ok := r.readLine()
		if !ok {
			return nil
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Fprintln(r.out, "tab <tours|bookings|reviews> | list | search <q> | status <s|ALL>")
			fmt.Fprintln(r.out, "newtour | approve <id> | reject <id> | del <tour|review> <id> | back")
		case "back":
			return nil
		case "tab":
			if len(args) == 2 {
				svc.SetTab(guide.Tab(args[1]))
			}
		case "list":
			switch svc.ActiveTab() {
			case guide.TabBookings:
				r.printBookings(svc.MyBookings())
			case guide.TabReviews:
				r.printReviews(svc.MyReviews())
			case guide.TabTours:
				r.printTours(svc.MyTours())
			default:
				fmt.Fprintf(r.out, "%d tours, %d pending bookings\n",
					svc.MyTourCount(), svc.PendingBookingCount())
			}
		case "search":
			q := strings.Join(args[1:], " ")
			if svc.ActiveTab() == guide.TabBookings {
				svc.SetBookingQuery(q)
				r.printBookings(svc.MyBookings())
			} else {
				svc.SetTourQuery(q)
				r.printTours(svc.MyTours())
			}
		case "status":
			if len(args) != 2 {
				continue
			}
			if svc.ActiveTab() == guide.TabBookings {
				svc.SetBookingStatusFilter(args[1])
				r.printBookings(svc.MyBookings())
			} else {
				svc.SetTourStatusFilter(args[1])
				r.printTours(svc.MyTours())
			}
		case "newtour":
			form, err := r.promptTourForm()
			if err != nil {
				r.printError(err)
				continue
			}
			if err := svc.CreateTour(ctx, guide.TourForm(*form)); err != nil {
				r.printError(err)
			}
		case "approve", "reject":
			if len(args) != 2 {
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				continue
			}
			if args[0] == "approve" {
				err = svc.ApproveBooking(ctx, id)
			} else {
				err = svc.RejectBooking(ctx, id)
			}
			if err != nil {
				r.printError(err)
			}
		case "del":
			if len(args) != 3 {
				continue
			}
			id, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				continue
			}
			switch args[1] {
			case "tour":
				err = svc.DeleteTour(ctx, id)
			case "review":
				err = svc.DeleteReview(ctx, id)
			}
			if err != nil {
				r.printError(err)
			}
		default:
			fmt.Fprintln(r.out, "unknown command; try 'help'")
		}
	}
}

// ===== tourist =====

func (r *repl) runTourist(ctx context.Context) error {
	svc, err := tourist.New(r.principal, r.client, r.client, r.client,
		r.notifier, r.confirm, r.resolver, r.log)
	if err != nil {
		return err
	}

	svc.LoadAll(ctx)
	fmt.Fprintln(r.out, "tourist dashboard. 'help' lists commands, 'back' leaves.")

	for {
		fmt.Fprintf(r.out, "tourist:%s> ", svc.ActiveTab())
		line, ok := r.readLine()
		if !ok {
			return nil
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			fmt.Fprintln(r.out, "tab <tours|bookings|reviews> | list | search <q>")
			fmt.Fprintln(r.out, "book <tourid> <date> | review <tourid> <rating> <comment...> | cancel <id> | back")
		case "back":
			return nil
		case "tab":
			if len(args) == 2 {
				svc.SetTab(tourist.Tab(args[1]))
			}
		case "list":
			switch svc.ActiveTab() {
			case tourist.TabBookings:
				r.printBookings(svc.MyBookings())
			case tourist.TabReviews:
				r.printReviews(svc.MyReviews())
			case tourist.TabTours:
				for _, t := range svc.AvailableTours() {
					fmt.Fprintf(r.out, "#%d %s $%.2f %s\n", t.ID, t.Title, t.Price, svc.TourImageURL(&t))
				}
			default:
				fmt.Fprintf(r.out, "%d bookings (%d pending)\n",
					svc.BookingCount(), svc.PendingBookingCount())
			}
		case "search":
			svc.SetTourQuery(strings.Join(args[1:], " "))
			for _, t := range svc.AvailableTours() {
				fmt.Fprintf(r.out, "#%d %s $%.2f\n", t.ID, t.Title, t.Price)
			}
		case "book":
			if len(args) != 3 {
				fmt.Fprintln(r.out, "usage: book <tourid> <date>")
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				continue
			}
			if err := svc.CreateBooking(ctx, tourist.BookingForm{TourID: id, Date: args[2]}); err != nil {
				r.printError(err)
			}
		case "review":
			if len(args) < 4 {
				fmt.Fprintln(r.out, "usage: review <tourid> <rating> <comment...>")
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				continue
			}
			rating, err := strconv.Atoi(args[2])
			if err != nil {
				continue
			}
			if err := svc.CreateReview(ctx, tourist.ReviewForm{
				TourID: id, Rating: rating, Comment: strings.Join(args[3:], " "),
			}); err != nil {
				r.printError(err)
			}
		case "cancel":
			if len(args) != 2 {
				continue
			}
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				continue
			}
			if err := svc.CancelBooking(ctx, id); err != nil {
				r.printError(err)
			}
		default:
			fmt.Fprintln(r.out, "unknown command; try 'help'")
		}
	}
}

// ===== shared helpers =====

type tourForm struct {
	Title       string    `validate:"required"`
	Description string    `validate:"required"`
	Price       float64   `validate:"required,gt=0"`
	Date        string    `validate:"required"`
	Image       io.Reader `validate:"required"`
	ImageName   string
}

// promptTourForm collects the tour fields interactively. The image is read
// from a local file path; validation proper happens in the module service.
func (r *repl) promptTourForm() (*tourForm, error) {
	ask := func(label string) string {
		fmt.Fprintf(r.out, "%s: ", label)
		line, _ := r.readLine()
		return line
	}

	form := &tourForm{
		Title:       ask("title"),
		Description: ask("description"),
		Date:        ask("date (YYYY-MM-DD)"),
	}
	if p, err := strconv.ParseFloat(ask("price"), 64); err == nil {
		form.Price = p
	}

	path := ask("image file")
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		form.Image = f
		form.ImageName = f.Name()
	}
	return form, nil
}

func (r *repl) printTours(tours []domain.Tour) {
	for _, t := range tours {
		fmt.Fprintf(r.out, "#%d %s $%.2f [%s]\n", t.ID, t.Title, t.Price, t.Status)
	}
}

func (r *repl) printBookings(bookings []domain.Booking) {
	for _, b := range bookings {
		fmt.Fprintf(r.out, "#%d %s — %s on %s [%s]\n",
			b.ID, b.TouristName(), b.TourTitle(), b.Date, b.Status)
	}
}

func (r *repl) printReviews(reviews []domain.Review) {
	for _, rv := range reviews {
		fmt.Fprintf(r.out, "#%d %d/5 %s\n", rv.ID, rv.Rating, rv.Comment)
	}
}

// printError renders validation failures per field and everything else on
// one line.
func (r *repl) printError(err error) {
	if fields, ok := validator.AsFieldErrors(err); ok {
		names := make([]string, 0, len(fields))
		for f := range fields {
			names = append(names, f)
		}
		sort.Strings(names)
		for _, f := range names {
			fmt.Fprintf(r.out, "  %s: %s\n", f, fields[f])
		}
		return
	}
	fmt.Fprintln(r.out, "error:", err)
}
