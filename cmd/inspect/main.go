package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/fieldview/fieldview/buf"
	"github.com/fieldview/fieldview/hexdump"
	"github.com/fieldview/fieldview/schema"
)

func main() {
	var (
		schemaSrc   = flag.String("schema", "", "Layout DSL source, e.g. 'x: u32, y: u16b, tail: bytes[4]'")
		dataFile    = flag.String("file", "", "Path to binary input file")
		hexData     = flag.String("hex", "", "Inline hex input (alternative to -file)")
		offset      = flag.Int("offset", 0, "Byte offset to bind the layout at")
		list        = flag.Bool("list", false, "List fields and exit without decoding data")
		setSpec     = flag.String("set", "", "Field assignments (name=value,name2=value2)")
		outFile     = flag.String("out", "", "Write the (possibly modified) buffer to this file")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *schemaSrc == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -schema <dsl> [-file data.bin | -hex deadbeef] [-offset n]")
		fmt.Fprintln(os.Stderr, "       inspect -schema <dsl> -list")
		fmt.Fprintln(os.Stderr, "       inspect -schema <dsl> -file data.bin -set x=1,y=0xff -out patched.bin")
		fmt.Fprintln(os.Stderr, "       inspect -schema <dsl> -file data.bin -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		schema.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*schemaSrc, *dataFile, *hexData, *offset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*schemaSrc, *dataFile, *hexData, *offset, *setSpec, *outFile, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(schemaSrc, dataFile, hexData string, offset int, setSpec, outFile string, listOnly bool) error {
	fm, err := schema.Compile(schemaSrc, nil)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	fmt.Printf("Schema: %d fields, %d bytes\n", fm.Len(), fm.Size())
	for i := 0; i < fm.Len(); i++ {
		name := fm.Label(i)
		if name == "" {
			name = fmt.Sprintf("[%d]", i)
		}
		fmt.Printf("  %-16s offset=%-4d size=%-4d %s\n", name, fm.Offset(i), fm.Codec(i).Size(), fm.Codec(i).String())
	}

	if listOnly {
		return nil
	}

	buffer, err := loadData(dataFile, hexData, offset+fm.Size())
	if err != nil {
		return err
	}

	window, err := buffer.Window(offset, buffer.Len()-offset)
	if err != nil {
		return fmt.Errorf("offset %d: %w", offset, err)
	}

	view, err := fm.Bind(window)
	if err != nil {
		return fmt.Errorf("bind: %w", err)
	}

	if setSpec != "" {
		for _, assign := range strings.Split(setSpec, ",") {
			parts := strings.SplitN(assign, "=", 2)
			if len(parts) != 2 {
				return fmt.Errorf("bad assignment %q (want name=value)", assign)
			}
			if err := setField(view, parts[0], parts[1]); err != nil {
				return fmt.Errorf("set %s: %w", parts[0], err)
			}
		}
	}

	fmt.Printf("\nDecoded fields:\n")
	for i := 0; i < fm.Len(); i++ {
		name := fm.Label(i)
		if name == "" {
			name = fmt.Sprintf("[%d]", i)
		}
		val, err := view.Index(i)
		if err != nil {
			fmt.Printf("  %-16s <error: %v>\n", name, err)
			continue
		}
		fmt.Printf("  %-16s %s\n", name, formatValue(val))
	}

	fmt.Printf("\n%s\n", (&hexdump.Dumper{}).Snip(view.Raw(), 20))

	if outFile != "" {
		if err := os.WriteFile(outFile, buffer.Raw(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outFile, err)
		}
		fmt.Printf("\nWrote %d bytes to %s\n", buffer.Len(), outFile)
	}

	return nil
}

// loadData reads the input bytes from a file or inline hex. With
// neither given it returns a zero buffer large enough for the layout.
func loadData(dataFile, hexData string, minSize int) (*buf.Buffer, error) {
	switch {
	case dataFile != "" && hexData != "":
		return nil, fmt.Errorf("-file and -hex are mutually exclusive")
	case dataFile != "":
		data, err := os.ReadFile(dataFile)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return buf.Copy(data), nil
	case hexData != "":
		b, err := buf.FromHex(hexData)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return buf.New(minSize), nil
	}
}

// setField parses a textual value according to the field's current
// decoded type and writes it through the view.
func setField(v *schema.View, name, text string) error {
	cur, err := v.Field(name)
	if err != nil {
		return err
	}
	val, err := parseValue(cur, text)
	if err != nil {
		return err
	}
	return v.SetField(name, val)
}

func parseValue(cur any, text string) (any, error) {
	switch cur.(type) {
	case uint64:
		return strconv.ParseUint(text, 0, 64)
	case int64:
		return strconv.ParseInt(text, 0, 64)
	case float32, float64:
		return strconv.ParseFloat(text, 64)
	case []byte:
		data, err := hex.DecodeString(strings.TrimPrefix(text, "0x"))
		if err != nil {
			return nil, fmt.Errorf("bad hex value %q: %w", text, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("field is not directly assignable")
	}
}

func formatValue(val any) string {
	switch x := val.(type) {
	case []byte:
		return "0x" + hex.EncodeToString(x)
	case uint64:
		return fmt.Sprintf("%d (0x%x)", x, x)
	case int64:
		return fmt.Sprintf("%d", x)
	case *schema.View:
		return strings.ReplaceAll(x.String(), "\n", "\n  ")
	default:
		return fmt.Sprintf("%v", x)
	}
}
