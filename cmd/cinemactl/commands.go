package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/app"
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	"github.com/jrsteele09/go-cinema-client/guard"
	"github.com/jrsteele09/go-cinema-client/internal/ui"
	"github.com/jrsteele09/go-cinema-client/internal/utils"
)

type command struct {
	summary string
	guard   guard.Guard
	action  func(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error
}

var commands = map[string]command{
	"login":          {"sign in with username and password", guard.PublicOnly(), login},
	"register":       {"create an account and sign in", guard.PublicOnly(), register},
	"logout":         {"end the session", nil, logout},
	"whoami":         {"show the signed-in identity", guard.Authenticated(), whoami},
	"profile":        {"show the full profile", guard.Authenticated(), profile},
	"movies":         {"list or search movies", nil, movies},
	"shows":          {"list shows for a movie", nil, shows},
	"seats":          {"show the seat map of a show", nil, seats},
	"book":           {"hold seats for a show", guard.Authenticated(), book},
	"bookings":       {"list my bookings", guard.Authenticated(), bookings},
	"booking":        {"show one booking", guard.Authenticated(), booking},
	"checkout":       {"apply points to a held booking", guard.Authenticated(), checkout},
	"pay":            {"start payment for a booking", guard.Authenticated(), pay},
	"payment-status": {"show payment status of a booking", guard.Authenticated(), paymentStatus},
	"cancel":         {"cancel a booking", guard.Authenticated(), cancel},
	"admin-cancel":   {"cancel any booking", guard.Role(cinemamodel.RoleAdmin, cinemamodel.RoleStaff), adminCancel},
}

func (c command) run(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	if c.guard != nil {
		if d := c.guard(a.Session.State()); !d.Allow {
			switch d.Redirect {
			case guard.LoginPath:
				return fmt.Errorf("not signed in, run 'cinemactl login' first")
			default:
				return fmt.Errorf("not permitted for this account")
			}
		}
	}
	fs := flag.NewFlagSet("cinemactl", flag.ContinueOnError)
	fs.SetOutput(out)
	return c.action(ctx, a, out, fs, args)
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "usage: cinemactl <command> [flags]")
	for _, name := range names {
		fmt.Fprintf(w, "  %-15s %s\n", name, commands[name].summary)
	}
}

func pageFlags(fs *flag.FlagSet) func() cinemamodel.PageParams {
	page := fs.Int("page", -1, "page number")
	size := fs.Int("size", -1, "page size")
	return func() cinemamodel.PageParams {
		var p cinemamodel.PageParams
		if *page >= 0 {
			p.Page = utils.Ptr(*page)
		}
		if *size > 0 {
			p.Size = utils.Ptr(*size)
		}
		return p
	}
}

// password falls back to CINEMA_PASSWORD so it can stay out of shell history.
func password(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("CINEMA_PASSWORD")
}

// describe expands validation failures into one line per field.
func describe(err error) error {
	e, ok := api.AsError(err)
	if !ok || !api.IsValidation(err) || len(e.Fields) == 0 {
		return err
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	var sb strings.Builder
	sb.WriteString(e.Message)
	for _, field := range fields {
		fmt.Fprintf(&sb, "\n  %s: %s", field, e.Fields[field])
	}
	return errors.New(sb.String())
}

func login(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	username := fs.String("u", "", "username")
	pass := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	resp, err := a.Queries.Login(ctx, cinemamodel.LoginRequest{Username: *username, Password: password(*pass)})
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "signed in as %s (%s)\n", resp.User.Username, resp.User.Role)
	return nil
}

func register(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	var req cinemamodel.RegisterRequest
	fs.StringVar(&req.Username, "u", "", "username")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.FullName, "name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	pass := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req.Password = password(*pass)
	if *phone != "" {
		req.PhoneNumber = phone
	}
	resp, err := a.Queries.Register(ctx, req)
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "welcome %s\n", resp.User.FullName)
	return nil
}

func logout(ctx context.Context, a *app.App, out io.Writer, _ *flag.FlagSet, _ []string) error {
	if err := a.Queries.Logout(ctx); err != nil {
		fmt.Fprintf(out, "signed out locally (server: %v)\n", err)
		return nil
	}
	fmt.Fprintln(out, "signed out")
	return nil
}

func whoami(_ context.Context, a *app.App, out io.Writer, _ *flag.FlagSet, _ []string) error {
	u := a.Session.State().User
	fmt.Fprintf(out, "%s <%s> %s, %d points\n", u.Username, u.Email, u.Role, u.Points)
	return nil
}

func profile(ctx context.Context, a *app.App, out io.Writer, _ *flag.FlagSet, _ []string) error {
	p, err := a.Queries.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s (%s)\n  email:  %s\n  phone:  %s\n  points: %d\n  status: %s\n",
		p.FullName, p.Username, p.Email, utils.ValueOr(p.PhoneNumber, "-"), p.Points, p.Status)
	return nil
}

func movies(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	search := fs.String("search", "", "keyword")
	feed := fs.String("feed", "", "now-showing or coming-soon")
	params := pageFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	var list []cinemamodel.MovieResponse
	var err error
	switch {
	case *feed == "now-showing":
		list, err = a.Queries.NowShowing(ctx)
	case *feed == "coming-soon":
		list, err = a.Queries.ComingSoon(ctx)
	case *search != "":
		var page cinemamodel.Page[cinemamodel.MovieResponse]
		page, err = a.Queries.SearchMovies(ctx, *search, params())
		list = page.Content
	default:
		var page cinemamodel.Page[cinemamodel.MovieResponse]
		page, err = a.Queries.Movies(ctx, params())
		list = page.Content
	}
	if err != nil {
		return err
	}
	for _, m := range list {
		fmt.Fprintf(out, "%6d  %-40s %3d min  %s\n", m.ID, m.Title, m.Duration, m.ReleaseDate)
	}
	return nil
}

func shows(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	movieID := fs.Int64("movie", 0, "movie id")
	from := fs.String("from", "", "start date (YYYY-MM-DD)")
	to := fs.String("to", "", "end date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var r cinemamodel.ShowDateRange
	if *from != "" {
		r.StartDate = from
	}
	if *to != "" {
		r.EndDate = to
	}
	list, err := a.Queries.ShowsByMovie(ctx, *movieID, r)
	if err != nil {
		return err
	}
	for _, s := range list {
		fmt.Fprintf(out, "%6d  %s %s  %-20s %-10s %d/%d free\n",
			s.ID, s.ShowDate, s.StartTime, s.CinemaName, s.HallName, s.AvailableSeats, s.TotalSeats)
	}
	return nil
}

func seats(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	showID := fs.Int64("show", 0, "show id")
	watch := fs.Bool("watch", false, "keep refreshing until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*watch {
		list, err := a.Queries.ShowSeats(ctx, *showID)
		if err != nil {
			return err
		}
		printSeats(out, list)
		return nil
	}
	a.Queries.WatchShowSeats(ctx, *showID, func(list []cinemamodel.ShowSeatResponse, err error) {
		if err != nil {
			fmt.Fprintf(out, "refresh failed: %v\n", err)
			return
		}
		printSeats(out, list)
	})
	return nil
}

func printSeats(out io.Writer, list []cinemamodel.ShowSeatResponse) {
	row := ""
	for _, s := range list {
		if s.RowName != row {
			if row != "" {
				fmt.Fprintln(out)
			}
			row = s.RowName
			fmt.Fprintf(out, "%-3s", row)
		}
		fmt.Fprintf(out, " %s", ui.Seat(s.Status, fmt.Sprintf("%2d", s.SeatNumber)))
	}
	fmt.Fprintln(out)
}

func parseIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seat id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func book(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	showID := fs.Int64("show", 0, "show id")
	seatList := fs.String("seats", "", "comma separated show seat ids")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids, err := parseIDs(*seatList)
	if err != nil {
		return err
	}
	b, err := a.Queries.CreateBooking(ctx, cinemamodel.CreateBookingRequest{ShowID: *showID, SeatIDs: ids})
	if err != nil {
		return describe(err)
	}
	printBooking(out, b)
	return nil
}

func printBooking(out io.Writer, b cinemamodel.BookingResponse) {
	fmt.Fprintf(out, "%s  %s\n  %s, %s %s at %s (%s)\n",
		b.BookingCode, b.Status, b.MovieTitle, b.ShowDate, b.ShowStartTime, b.CinemaName, b.HallName)
	for _, s := range b.Seats {
		fmt.Fprintf(out, "  seat %s%d %-8s %.2f\n", s.RowName, s.SeatNumber, s.SeatType, s.Price)
	}
	fmt.Fprintf(out, "  total %.2f, discount %.2f, pay %.2f\n", b.TotalAmount, b.DiscountAmount, b.FinalAmount)
	if b.ExpiresAt != nil {
		fmt.Fprintf(out, "  held until %s\n", *b.ExpiresAt)
	}
}

func bookings(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	params := pageFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	page, err := a.Queries.MyBookings(ctx, params())
	if err != nil {
		return err
	}
	for _, b := range page.Content {
		fmt.Fprintf(out, "%-12s %-10s %-30s %s %s\n", b.BookingCode, b.Status, b.MovieTitle, b.ShowDate, b.ShowStartTime)
	}
	fmt.Fprintf(out, "page %d of %d\n", page.Page+1, page.TotalPages)
	return nil
}

func booking(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	code := fs.String("code", "", "booking code")
	watch := fs.Bool("watch", false, "keep refreshing until interrupted")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*watch {
		b, err := a.Queries.Booking(ctx, *code)
		if err != nil {
			return err
		}
		printBooking(out, b)
		return nil
	}
	return a.Queries.WatchBooking(ctx, *code, func(b cinemamodel.BookingResponse, err error) {
		if err != nil {
			fmt.Fprintf(out, "refresh failed: %v\n", err)
			return
		}
		printBooking(out, b)
	})
}

func checkout(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	code := fs.String("code", "", "booking code")
	points := fs.Int("points", -1, "loyalty points to spend")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req := cinemamodel.CheckoutRequest{BookingCode: *code}
	if *points >= 0 {
		req.PointsToUse = points
	}
	b, err := a.Queries.Checkout(ctx, req)
	if err != nil {
		return describe(err)
	}
	printBooking(out, b)
	return nil
}

func pay(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	code := fs.String("code", "", "booking code")
	method := fs.String("method", string(cinemamodel.PaymentVNPay), "VNPAY, MOMO or ZALOPAY")
	if err := fs.Parse(args); err != nil {
		return err
	}
	p, err := a.Queries.CreatePayment(ctx, cinemamodel.CreatePaymentRequest{
		BookingCode:   *code,
		PaymentMethod: cinemamodel.PaymentMethod(strings.ToUpper(*method)),
	})
	if err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "pay %.2f before %s:\n  %s\n", p.Amount, p.ExpiresAt, p.PaymentURL)
	return nil
}

func paymentStatus(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	code := fs.String("code", "", "booking code")
	watch := fs.Bool("watch", false, "poll until the payment settles")
	if err := fs.Parse(args); err != nil {
		return err
	}
	show := func(s cinemamodel.PaymentStatusResponse) {
		fmt.Fprintf(out, "%s  %s", s.BookingCode, ui.Payment(s.PaymentStatus))
		if s.TransactionID != nil {
			fmt.Fprintf(out, "  txn %s", *s.TransactionID)
		}
		fmt.Fprintln(out)
	}
	if !*watch {
		s, err := a.Queries.PaymentStatus(ctx, *code)
		if err != nil {
			return err
		}
		show(s)
		return nil
	}

	ctx, stop := context.WithCancel(ctx)
	defer stop()
	return a.Queries.WatchPaymentStatus(ctx, *code, func(s cinemamodel.PaymentStatusResponse, err error) {
		if err != nil {
			fmt.Fprintf(out, "refresh failed: %v\n", err)
			return
		}
		show(s)
		if s.PaymentStatus.Settled() {
			stop()
		}
	})
}

func cancel(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	code := fs.String("code", "", "booking code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.Queries.CancelBooking(ctx, *code); err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "%s cancelled\n", *code)
	return nil
}

func adminCancel(ctx context.Context, a *app.App, out io.Writer, fs *flag.FlagSet, args []string) error {
	code := fs.String("code", "", "booking code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.Queries.AdminCancelBooking(ctx, *code); err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "%s cancelled\n", *code)
	return nil
}
