package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"text/tabwriter"

	"github.com/aetherid/console"
	"github.com/aetherid/console/client/resource"
	"github.com/aetherid/console/schema"
	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	_ "github.com/viant/scy/kms/blowfish"
	"golang.org/x/sync/errgroup"
)

// Service executes CLI commands against a console client.
type Service struct {
	console *console.Console
	stdout  io.Writer
	logger  *slog.Logger
}

func (s *Service) Login(ctx context.Context, command *LoginCommand) error {
	username, password := command.Username, command.Password
	if command.Secret != "" {
		basic, err := loadSecret(ctx, command.Secret, command.Key)
		if err != nil {
			return err
		}
		username, password = basic.Username, basic.Password
	}
	if username == "" || password == "" {
		return errors.New("username and password (or --secret) are required")
	}
	if _, err := s.console.Auth().Login(ctx, username, password); err != nil {
		return err
	}
	s.logger.Debug("logged in", "username", username)
	_, err := fmt.Fprintf(s.stdout, "logged in as %v (admin: %v)\n", username, s.console.Auth().IsAdmin())
	return err
}

// loadSecret reads a basic credential with scy; key names the kms used to decrypt it.
func loadSecret(ctx context.Context, URL, key string) (*cred.Basic, error) {
	secrets := scy.New()
	secret, err := secrets.Load(ctx, scy.NewResource(cred.Basic{}, URL, key))
	if err != nil {
		return nil, fmt.Errorf("failed to load secret %v: %w", URL, err)
	}
	basic, ok := secret.Target.(*cred.Basic)
	if !ok {
		return nil, fmt.Errorf("unsupported secret type %T at %v", secret.Target, URL)
	}
	return basic, nil
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.console.Auth().Logout(ctx); err != nil {
		return err
	}
	_, err := fmt.Fprintln(s.stdout, "logged out")
	return err
}

func (s *Service) WhoAmI() error {
	profile, ok := s.console.Auth().Profile()
	if !ok || !s.console.Auth().IsAuthenticated() {
		return errors.New("not logged in")
	}
	return s.print(map[string]any{
		"username": profile.Username,
		"roles":    profile.Roles,
		"admin":    s.console.Auth().IsAdmin(),
	})
}

func (s *Service) Get(ctx context.Context, command *GetCommand) error {
	query := url.Values{}
	for name, value := range command.Query {
		query.Set(name, value)
	}
	var result json.RawMessage
	if err := s.console.Get(ctx, command.Args.Path, query, &result); err != nil {
		return err
	}
	return s.print(result)
}

func (s *Service) Orders(ctx context.Context, command *OrdersCommand) error {
	page := resource.PageRequest{Page: command.Page, Size: command.Size}
	var orders *schema.Page[schema.Order]
	var err error
	if command.Keyword != "" {
		orders, err = s.console.Orders.Search(ctx, command.Keyword, page)
	} else {
		orders, err = s.console.Orders.List(ctx, page)
	}
	if err != nil {
		return err
	}
	writer := tabwriter.NewWriter(s.stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(writer, "ID\tCODE\tRECEIVER\tSTATUS\tTOTAL")
	for _, order := range orders.Content {
		_, _ = fmt.Fprintf(writer, "%d\t%v\t%v\t%v\t%.0f\n", order.ID, order.OrderCode, order.ReceiverName, order.Status, order.FinalAmount)
	}
	_, _ = fmt.Fprintf(writer, "page %d/%d, %d orders\n", orders.Page.Number+1, max(orders.Page.TotalPages, 1), orders.Page.TotalElements)
	return writer.Flush()
}

// Dashboard fetches the statistics concurrently; a credential refresh they trigger together happens once.
func (s *Service) Dashboard(ctx context.Context) error {
	var (
		total    float64
		months   []schema.MonthlyRevenue
		products []schema.SellingProduct
		orders   *schema.Page[schema.Order]
	)
	group, ctx := errgroup.WithContext(ctx)
	statistics := s.console.Statistics
	group.Go(func() (err error) {
		total, err = statistics.TotalRevenue(ctx)
		return err
	})
	group.Go(func() (err error) {
		months, err = statistics.RevenueByMonth(ctx)
		return err
	})
	group.Go(func() (err error) {
		products, err = statistics.TopSellingProducts(ctx)
		return err
	})
	group.Go(func() (err error) {
		orders, err = statistics.NewOrders(ctx, resource.PageRequest{Size: 5})
		return err
	})
	if err := group.Wait(); err != nil {
		return err
	}
	return s.print(map[string]any{
		"totalRevenue":       total,
		"revenueByMonth":     months,
		"topSellingProducts": products,
		"newOrders":          orders.Page.TotalElements,
	})
}

func (s *Service) print(value any) error {
	encoder := json.NewEncoder(s.stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
