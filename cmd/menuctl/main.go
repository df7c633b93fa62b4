package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	dashboard "github.com/cafemenu/menudash/components/dashboard"
	"github.com/cafemenu/menudash/components/dashboard/commands"
	"github.com/cafemenu/menudash/pkg/backend"
	"github.com/cafemenu/menudash/pkg/menufile"
	"github.com/cafemenu/menudash/pkg/preview"
	"github.com/cafemenu/menudash/pkg/publicmenu"
)

type cli struct {
	Config         string `type:"path" default:"menuctl.yaml" help:"Path to the YAML config file."`
	BaseURL        string `env:"MENUDASH_BASE_URL" help:"Backend API base URL (overrides config)."`
	UploadsBaseURL string `env:"MENUDASH_UPLOADS_BASE_URL" help:"Uploads base URL for menu images (overrides config)."`
	PublicBaseURL  string `env:"MENUDASH_PUBLIC_BASE_URL" help:"Public site base URL used for QR menu links (overrides config)."`
	Verbose        bool   `short:"v" help:"Enable debug logging."`

	Session sessionCmd `cmd:"" help:"Check the current session and show the signed-in owner."`
	Menu    menuCmd    `cmd:"" help:"Manage the café's menu catalogue."`
	Cafe    cafeCmd    `cmd:"" help:"Show or update the café profile."`
	Account accountCmd `cmd:"" help:"Account operations."`
	QR      qrCmd      `cmd:"" name:"qr" help:"Print the public menu link a café QR code should encode."`
	Preview previewCmd `cmd:"" help:"Serve a local preview of a café's public menu."`
	SignOut signOutCmd `cmd:"" name:"signout" help:"End the current session."`
}

type menuCmd struct {
	List   menuListCmd   `cmd:"" help:"List the café's menu items."`
	Add    menuAddCmd    `cmd:"" help:"Add a menu item."`
	Edit   menuEditCmd   `cmd:"" help:"Update a menu item."`
	Rm     menuRmCmd     `cmd:"" help:"Delete a menu item."`
	Toggle menuToggleCmd `cmd:"" help:"Toggle a menu item's availability."`
	Import menuImportCmd `cmd:"" help:"Bulk-create menu items from a YAML or JSON document."`
	Chart  menuChartCmd  `cmd:"" help:"Render the per-category overview chart to an HTML file."`
}

type cafeCmd struct {
	Show cafeShowCmd `cmd:"" help:"Print the café profile."`
	Save cafeSaveCmd `cmd:"" help:"Update the café profile."`
}

type accountCmd struct {
	Delete    accountDeleteCmd `cmd:"" help:"Permanently delete the owner account."`
	Verify    verifyOTPCmd     `cmd:"" help:"Submit the emailed one-time password."`
	ResendOTP resendOTPCmd     `cmd:"" name:"resend-otp" help:"Request a fresh one-time password."`
}

func main() {
	_ = godotenv.Load()
	root := &cli{}
	ctx := kong.Parse(root,
		kong.Name("menuctl"),
		kong.Description("Café menu dashboard from the terminal."),
		kong.UsageOnError(),
	)
	app, err := newApp(root)
	ctx.FatalIfErrorf(err)
	err = ctx.Run(context.Background(), app)
	ctx.FatalIfErrorf(err)
}

type fileConfig struct {
	BaseURL        string `yaml:"base_url"`
	UploadsBaseURL string `yaml:"uploads_base_url"`
	PublicBaseURL  string `yaml:"public_base_url"`
}

type app struct {
	client     *backend.Client
	controller *dashboard.Controller
	public     *publicmenu.Service
	charts     *dashboard.ChartCache
	telemetry  commands.Telemetry
	log        *logrus.Logger

	publicBaseURL string
}

func newApp(root *cli) (*app, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if root.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig(root.Config)
	if err != nil {
		return nil, err
	}
	if root.BaseURL != "" {
		cfg.BaseURL = root.BaseURL
	}
	if root.UploadsBaseURL != "" {
		cfg.UploadsBaseURL = root.UploadsBaseURL
	}
	if root.PublicBaseURL != "" {
		cfg.PublicBaseURL = root.PublicBaseURL
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:4000/api/v1"
	}
	if cfg.UploadsBaseURL == "" {
		cfg.UploadsBaseURL = "http://localhost:4000/uploads"
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:5173"
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL:        cfg.BaseURL,
		UploadsBaseURL: cfg.UploadsBaseURL,
		Logger:         log,
	})
	if err != nil {
		return nil, err
	}

	telemetry := logTelemetry{log: log}
	controller, err := dashboard.NewController(dashboard.Options{
		Backend:   client,
		Notifier:  cliNotifier{},
		Navigator: cliNavigator{log: log},
		Telemetry: telemetry,
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	return &app{
		client:        client,
		controller:    controller,
		public:        publicmenu.NewService(client, log),
		charts:        dashboard.NewChartCache(5 * time.Minute),
		telemetry:     telemetry,
		log:           log,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("menuctl: read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("menuctl: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// mount runs the session check and hydrates the stores. Commands that need an
// authenticated owner call this first.
func (a *app) mount(ctx context.Context) error {
	if a.controller.Mount(ctx) != dashboard.SessionAuthenticated {
		return errors.New(a.controller.Session().Message())
	}
	return nil
}

type cliNotifier struct{}

func (cliNotifier) Success(message string) { fmt.Fprintf(os.Stdout, "✓ %s\n", message) }
func (cliNotifier) Error(message string)   { fmt.Fprintf(os.Stderr, "✗ %s\n", message) }

// cliNavigator records where a browser client would be sent. A terminal
// session has nowhere to navigate.
type cliNavigator struct {
	log *logrus.Logger
}

func (n cliNavigator) NavigateTo(path string) {
	n.log.WithField("path", path).Debug("navigation requested")
}

type logTelemetry struct {
	log *logrus.Logger
}

func (t logTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	t.log.WithFields(logrus.Fields(payload)).WithField("event", event).Debug("telemetry")
}

type sessionCmd struct{}

func (cmd *sessionCmd) Run(ctx context.Context, a *app) error {
	if err := a.mount(ctx); err != nil {
		return err
	}
	owner := a.controller.Owner()
	fmt.Fprintf(os.Stdout, "✓ Signed in as %s <%s>\n", owner.FullName, owner.Email)
	return nil
}

type menuListCmd struct{}

func (cmd *menuListCmd) Run(ctx context.Context, a *app) error {
	if err := a.mount(ctx); err != nil {
		return err
	}
	if msg := a.controller.Catalogue().ErrorMessage(); msg != "" {
		return errors.New(msg)
	}
	items := a.controller.Catalogue().Items()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDISH\tCATEGORY\tHALF\tFULL\tAVAILABLE\tSPECIAL")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%t\n",
			item.ID, item.DishName, item.Category,
			priceCell(item.HalfPrice), priceCell(item.FullPrice),
			item.IsAvailable, item.IsChefSpecial)
	}
	return w.Flush()
}

func priceCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

type menuAddCmd struct {
	Dish        string `required:"" help:"Dish name."`
	Category    string `required:"" help:"Menu category."`
	Description string `help:"Dish description."`
	Half        string `help:"Half-portion price."`
	Full        string `help:"Full-portion price."`
	ChefSpecial bool   `help:"Mark the dish as a chef's special."`
}

func (cmd *menuAddCmd) Run(ctx context.Context, a *app) error {
	if err := a.mount(ctx); err != nil {
		return err
	}
	create := commands.NewCreateItemCommand(a.controller, a.telemetry)
	return create.Execute(ctx, commands.CreateItemInput{
		DishName:      cmd.Dish,
		Category:      cmd.Category,
		Description:   cmd.Description,
		HalfPrice:     cmd.Half,
		FullPrice:     cmd.Full,
		IsChefSpecial: cmd.ChefSpecial,
	})
}

type menuEditCmd struct {
	ID          string `arg:"" help:"Menu item id."`
	Dish        string `required:"" help:"Dish name."`
	Category    string `required:"" help:"Menu category."`
	Description string `help:"Dish description."`
	Half        string `help:"Half-portion price."`
	Full        string `help:"Full-portion price."`
	ChefSpecial bool   `help:"Mark the dish as a chef's special."`
}

func (cmd *menuEditCmd) Run(ctx context.Context, a *app) error {
	if err := a.mount(ctx); err != nil {
		return err
	}
	update := commands.NewUpdateItemCommand(a.controller, a.telemetry)
	return update.Execute(ctx, commands.UpdateItemInput{
		ItemID:        cmd.ID,
		DishName:      cmd.Dish,
		Category:      cmd.Category,
		Description:   cmd.Description,
		HalfPrice:     cmd.Half,
		FullPrice:     cmd.Full,
		IsChefSpecial: cmd.ChefSpecial,
	})
}

type menuRmCmd struct {
	ID  string `arg:"" help:"Menu item id."`
	Yes bool   `help:"Confirm the deletion."`
}

func (cmd *menuRmCmd) Run(ctx context.Context, a *app) error {
	if !cmd.Yes {
		return errors.New("menuctl: deleting a menu item is permanent, re-run with --yes to confirm")
	}
	if err := a.mount(ctx); err != nil {
		return err
	}
	item, ok := a.controller.Catalogue().Item(cmd.ID)
	if !ok {
		return fmt.Errorf("menuctl: no menu item with id %s", cmd.ID)
	}
	remove := commands.NewRemoveItemCommand(a.controller, a.telemetry)
	if err := remove.Execute(ctx, commands.RemoveItemInput{ItemID: cmd.ID}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ %q has been deleted successfully!\n", item.DishName)
	return nil
}

type menuToggleCmd struct {
	ID string `arg:"" help:"Menu item id."`
}

func (cmd *menuToggleCmd) Run(ctx context.Context, a *app) error {
	if err := a.mount(ctx); err != nil {
		return err
	}
	toggle := commands.NewToggleAvailabilityCommand(a.controller, a.telemetry)
	if err := toggle.Execute(ctx, commands.ToggleAvailabilityInput{ItemID: cmd.ID}); err != nil {
		return err
	}
	if item, ok := a.controller.Catalogue().Item(cmd.ID); ok {
		fmt.Fprintf(os.Stdout, "✓ %q is now available=%t\n", item.DishName, item.IsAvailable)
	}
	return nil
}

type menuImportCmd struct {
	File string `arg:"" type:"path" help:"YAML or JSON menu document."`
}

func (cmd *menuImportCmd) Run(ctx context.Context, a *app) error {
	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("menuctl: read %s: %w", cmd.File, err)
	}
	doc, err := menufile.Parse(data)
	if err != nil {
		return err
	}
	if err := a.mount(ctx); err != nil {
		return err
	}
	for i, draft := range doc.Drafts() {
		if err := a.controller.CreateItem(ctx, draft); err != nil {
			return fmt.Errorf("menuctl: item %d (%s): %w", i+1, draft.DishName, err)
		}
	}
	fmt.Fprintf(os.Stdout, "✓ Imported %d menu items from %s\n", len(doc.Items), cmd.File)
	return nil
}

type menuChartCmd struct {
	Out string `type:"path" default:"menu-overview.html" help:"Output HTML file."`
}

func (cmd *menuChartCmd) Run(ctx context.Context, a *app) error {
	if err := a.mount(ctx); err != nil {
		return err
	}
	html, err := dashboard.RenderOverviewChart(a.controller.Catalogue().Items(), a.charts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.Out, []byte(html), 0o644); err != nil {
		return fmt.Errorf("menuctl: write chart: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ Wrote menu overview chart to %s\n", cmd.Out)
	return nil
}

type cafeShowCmd struct{}

func (cmd *cafeShowCmd) Run(ctx context.Context, a *app) error {
	if err := a.mount(ctx); err != nil {
		return err
	}
	p := a.controller.Cafe().Profile()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Name\t%s\n", p.CafeName)
	fmt.Fprintf(w, "Phone\t%s\n", p.PhoneNo)
	fmt.Fprintf(w, "Address\t%s\n", p.Address)
	fmt.Fprintf(w, "Description\t%s\n", p.Description)
	return w.Flush()
}

type cafeSaveCmd struct {
	Name        string `help:"Café name."`
	Phone       string `help:"Contact phone number."`
	Address     string `help:"Street address."`
	Description string `help:"Short description shown on the public page."`
	Logo        string `help:"Logo URL."`
}

func (cmd *cafeSaveCmd) Run(ctx context.Context, a *app) error {
	if err := a.mount(ctx); err != nil {
		return err
	}
	save := commands.NewSaveCafeCommand(a.controller, a.telemetry)
	return save.Execute(ctx, commands.SaveCafeInput{
		CafeName:    cmd.Name,
		PhoneNo:     cmd.Phone,
		Address:     cmd.Address,
		Description: cmd.Description,
		Logo:        cmd.Logo,
	})
}

type accountDeleteCmd struct {
	Yes bool `help:"Confirm the deletion. There is no undo."`
}

func (cmd *accountDeleteCmd) Run(ctx context.Context, a *app) error {
	if err := a.mount(ctx); err != nil {
		return err
	}
	del := commands.NewDeleteAccountCommand(a.controller, a.telemetry)
	return del.Execute(ctx, commands.DeleteAccountInput{Confirm: cmd.Yes})
}

type verifyOTPCmd struct {
	Email string `required:"" help:"Account email address."`
	OTP   string `required:"" help:"One-time password from the verification email."`
}

func (cmd *verifyOTPCmd) Run(ctx context.Context, a *app) error {
	if err := a.client.VerifyOTP(ctx, cmd.Email, cmd.OTP); err != nil {
		return errors.New(backend.UserMessage(err))
	}
	fmt.Fprintln(os.Stdout, "✓ Email verified successfully!")
	return nil
}

type resendOTPCmd struct {
	Email string `required:"" help:"Account email address."`
}

func (cmd *resendOTPCmd) Run(ctx context.Context, a *app) error {
	if err := a.client.ResendOTP(ctx, cmd.Email); err != nil {
		return errors.New(backend.UserMessage(err))
	}
	fmt.Fprintln(os.Stdout, "✓ A new OTP has been sent to your email.")
	return nil
}

type qrCmd struct {
	CafeID string `arg:"" help:"Café id from the public directory."`
	Name   string `help:"Café name, used to derive the asset file name."`
}

func (cmd *qrCmd) Run(_ context.Context, a *app) error {
	fmt.Fprintf(os.Stdout, "Link:  %s\n", publicmenu.MenuLink(a.publicBaseURL, cmd.CafeID))
	if cmd.Name != "" {
		fmt.Fprintf(os.Stdout, "Asset: %s.png\n", publicmenu.QRAssetSlug(cmd.Name))
	}
	return nil
}

type previewCmd struct {
	Addr string `default:":8787" help:"Listen address."`
}

func (cmd *previewCmd) Run(_ context.Context, a *app) error {
	srv, err := preview.NewServer(preview.Config{
		Source:         a.public,
		UploadsBaseURL: a.client.UploadsBaseURL(),
		Logger:         a.log,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Preview listening on %s (open /menu/<cafe-id>)\n", cmd.Addr)
	return srv.Listen(cmd.Addr)
}

type signOutCmd struct{}

func (cmd *signOutCmd) Run(ctx context.Context, a *app) error {
	return a.controller.SignOut(ctx)
}
