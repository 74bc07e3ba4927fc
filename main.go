package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pesatrack/sms-parser/internal/api"
	"github.com/pesatrack/sms-parser/internal/ingest"
	"github.com/pesatrack/sms-parser/internal/logger"
	"github.com/pesatrack/sms-parser/internal/models"
	"github.com/pesatrack/sms-parser/internal/parser"
	"github.com/pesatrack/sms-parser/internal/store"
	"github.com/pesatrack/sms-parser/internal/writer"
)

const version = "1.0.0"

func main() {
	senderFlag := flag.String("sender", "", "SMS sender id (e.g. MPESA, TIGOPESA)")
	csvFlag := flag.String("csv", "", "Also write the parsed record to a CSV file at this path")
	serveFlag := flag.Bool("serve", false, "Run the HTTP API server instead of parsing a message")
	portFlag := flag.Int("port", 8080, "HTTP server port (with -serve)")
	dbFlag := flag.String("db", "pesatrack.db", "SQLite database path (with -serve)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	helpFlag := flag.Bool("help", false, "Show usage help")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Mobile-Money SMS Transaction Parser

Extracts structured transaction records (reference, provider, type, amount,
balance, fee, counterparty, timestamp) from mobile-money SMS notifications
sent by M-Pesa, TigoPesa/Mixx by Yas, AirtelMoney and HaloPesa.

Usage:
  sms-parser [flags] "<sms text>"
  sms-parser -serve [-port 8080] [-db pesatrack.db]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Parse a single message and print the record as JSON
  sms-parser "Umepokea TSh5,000 kutoka JOHN DOE. Salio lako ni TSh25,000"

  # Include the SMS sender id for provider detection
  sms-parser -sender MPESA "CCC3H3KXJZV Imethibitishwa. Umepokea TSh10,000"

  # Run the HTTP API with a local SQLite store
  sms-parser -serve -port 8080 -db pesatrack.db
`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("sms-parser v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		if err := runServer(*portFlag, *dbFlag); err != nil {
			fatalf("Server error: %v\n", err)
		}
		return
	}

	if *helpFlag || flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	text := strings.Join(flag.Args(), " ")
	if err := parseOne(text, *senderFlag, *csvFlag); err != nil {
		fatalf("Error: %v\n", err)
	}
}

func parseOne(text, sender, csvPath string) error {
	engine := parser.New()

	txn, err := engine.Parse(text, sender)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(txn, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	fmt.Println(string(out))

	if csvPath != "" {
		w := &writer.CSVWriter{IncludeHeader: true}
		if err := w.WriteToFile(csvPath, []models.ParsedTransaction{*txn}); err != nil {
			return err
		}
		fmt.Printf("CSV written to %s\n", csvPath)
	}
	return nil
}

func runServer(port int, dbPath string) error {
	log := logger.New()

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	engine := parser.New(parser.WithProviderRegistry(st.IsRegisteredProvider))
	svc := ingest.New(engine, st, log)
	h := api.New(engine, svc, st, log)

	app := fiber.New()
	h.Register(app)

	log.Info().Int("port", port).Str("db", dbPath).Msg("starting sms-parser API")
	return app.Listen(fmt.Sprintf(":%d", port))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
