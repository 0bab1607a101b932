package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hollis/quantumgw/internal/config"
	"github.com/hollis/quantumgw/internal/discovery"
	"github.com/hollis/quantumgw/internal/gateway"
)

// Command flags
var (
	gatewayHost   string
	password      string
	plainHTTP     bool
	scanTimeout   int
	watchInterval int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&gatewayHost, "host", "", "Gateway address (e.g., 192.168.1.1)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Gateway admin password (prompted if omitted)")
	rootCmd.PersistentFlags().BoolVar(&plainHTTP, "http", false, "Use plain HTTP for the G1100 admin UI")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(discoverCmd)
}

// scanCmd reports devices currently online
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List devices currently connected to the gateway",
	Long: `Authenticate against the gateway and list the devices it currently
reports as online, one MAC address per line with the advertised hostname.`,
	Example: `  # Scan the default Fios gateway address
  quantumgw scan --host 192.168.1.1

  # Password on the command line (otherwise prompted)
  quantumgw scan --host 192.168.1.1 --password hunter2`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	scanner, err := connect()
	if err != nil {
		return err
	}

	macs, err := scanner.ScanDevices()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	sort.Strings(macs)
	rows := make([][]string, 0, len(macs))
	for _, mac := range macs {
		rows = append(rows, []string{mac, scanner.DeviceName(mac)})
	}
	fmt.Print(renderTable([]string{"MAC", "NAME"}, rows))
	fmt.Printf("\n%d device(s) online\n", len(macs))

	rememberGateway(scanner)
	return nil
}

// devicesCmd reports every device the gateway knows about
var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List all devices known to the gateway",
	Long: `Authenticate against the gateway and list every device it knows
about, connected or not, including addresses where the firmware reports
them (the G3100 device list carries no addresses).`,
	RunE: runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	scanner, err := connect()
	if err != nil {
		return err
	}

	all, err := scanner.AllDevices()
	if err != nil {
		return fmt.Errorf("device fetch failed: %w", err)
	}

	macs := make([]string, 0, len(all))
	for mac := range all {
		macs = append(macs, mac)
	}
	sort.Strings(macs)

	rows := make([][]string, 0, len(macs))
	for _, mac := range macs {
		d := all[mac]
		state := "offline"
		if d.Connected {
			state = "online"
		}
		rows = append(rows, []string{d.MAC, d.Name, state, d.IP})
	}
	fmt.Print(renderTable([]string{"MAC", "NAME", "STATE", "IP"}, rows))
	fmt.Printf("\n%d device(s) known\n", len(all))

	rememberGateway(scanner)
	return nil
}

// watchCmd polls the gateway and reports joins and leaves
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the gateway and report devices joining or leaving",
	Long: `Repeatedly scan the gateway and print a line whenever a device
appears on or disappears from the network. Runs until interrupted.

Failed poll cycles are skipped; the next cycle retries, re-authenticating
when the gateway session has expired.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchInterval, "interval", 0, "Poll interval in seconds (default from config, 30)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	scanner, err := connect()
	if err != nil {
		return err
	}

	interval := time.Duration(watchInterval) * time.Second
	if watchInterval <= 0 {
		interval = 30 * time.Second
		if registry, err := config.LoadRegistry(); err == nil {
			interval = time.Duration(registry.Preferences.PollInterval) * time.Second
		}
	}

	fmt.Printf("Watching gateway %s every %s (Ctrl-C to stop)\n", scanner.Host, interval)
	rememberGateway(scanner)

	online := make(map[string]bool)
	first := true

	for {
		macs, err := scanner.ScanDevices()
		if err != nil {
			// Skip this cycle; re-authenticate if the session expired.
			fmt.Fprintf(os.Stderr, "poll failed: %v\n", err)
			if gateway.IsAuthError(err) && !scanner.CheckAuth() {
				fmt.Fprintln(os.Stderr, "re-authentication failed, retrying next cycle")
			}
			time.Sleep(interval)
			continue
		}

		current := make(map[string]bool, len(macs))
		for _, mac := range macs {
			current[mac] = true
			if !online[mac] && !first {
				fmt.Printf("%s  JOIN   %s (%s)\n", time.Now().Format(time.RFC3339), mac, scanner.DeviceName(mac))
			}
		}
		for mac := range online {
			if !current[mac] {
				fmt.Printf("%s  LEAVE  %s\n", time.Now().Format(time.RFC3339), mac)
			}
		}

		if first {
			fmt.Printf("%d device(s) online\n", len(macs))
			first = false
		}
		online = current
		time.Sleep(interval)
	}
}

// discoverCmd finds gateways via mDNS
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover Fios gateways on the local network",
	Long: `Browse mDNS for Fios gateways advertising their admin interface.

Discovery is best-effort: a gateway with mDNS disabled will not show up
and must be addressed directly (typically 192.168.1.1).`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Discovery timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	fmt.Printf("Discovering Fios gateways (timeout: %ds)...\n\n", scanTimeout)

	routers, err := discovery.ScanForRouters(time.Duration(scanTimeout) * time.Second)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	if len(routers) == 0 {
		fmt.Println("No gateways found.")
		fmt.Println("\nThe router may have mDNS disabled; try the default address:")
		fmt.Println("  quantumgw scan --host 192.168.1.1")
		return nil
	}

	rows := make([][]string, 0, len(routers))
	for _, r := range routers {
		rows = append(rows, []string{r.Name, r.IP, fmt.Sprintf("%d", r.Port)})
	}
	fmt.Print(renderTable([]string{"NAME", "IP", "PORT"}, rows))
	fmt.Printf("\nUse 'quantumgw scan --host <ip>' to scan a gateway\n")

	return nil
}

// connect resolves the target host and password, builds a Scanner, and
// fails fast when the initial authentication does not succeed.
func connect() (*gateway.Scanner, error) {
	host := gatewayHost
	if host == "" {
		if registry, err := config.LoadRegistry(); err == nil {
			host = registry.Preferences.DefaultGateway
		}
	}
	if host == "" {
		return nil, fmt.Errorf("no gateway host given (use --host, or set default_gateway in the config file)")
	}

	pw := password
	if pw == "" {
		var err error
		pw, err = promptPassword(host)
		if err != nil {
			return nil, err
		}
	}

	useHTTPS := !plainHTTP
	if !plainHTTP && gatewayHost == "" {
		// Fall back to the per-gateway scheme preference.
		if registry, err := config.LoadRegistry(); err == nil {
			if gw := registry.GetGateway(host); gw != nil {
				useHTTPS = gw.WantsHTTPS()
			}
		}
	}

	scanner := gateway.NewScanner(host, pw, useHTTPS)
	if !scanner.SuccessInit {
		return nil, fmt.Errorf("could not authenticate against gateway %s (check the admin password)", host)
	}
	return scanner, nil
}

// promptPassword reads the admin password without echo.
func promptPassword(host string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no password given and stdin is not a terminal (use --password)")
	}
	fmt.Fprintf(os.Stderr, "Admin password for %s: ", host)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

// rememberGateway records the detected model and scan time in the user
// config. Best-effort: scan output should not fail on config problems.
func rememberGateway(scanner *gateway.Scanner) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return
	}
	entry := registry.EnsureGateway(scanner.Host)
	entry.Model = scanner.Model()
	entry.LastSeen = time.Now()
	if err := registry.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save config: %v\n", err)
	}
}
