package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"genmap/internal/gedcom"
	"genmap/internal/query"
	"genmap/internal/server"
	"genmap/internal/workspace"
	"genmap/util"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

// maxSearchResults caps the match list printed by parse --search.
const maxSearchResults = 10

// dataFile is the persistent --file flag. GENMAP_FILE is the fallback.
var dataFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "genmap",
		Short: "Parse and query GEDCOM genealogy files",
		Long: `Genmap converts GEDCOM genealogy exports into structured JSON and answers
questions about the people in them - name and location searches, family
trees, and dataset statistics - from the command line or over MCP.`,
	}
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "GEDCOM file to query (falls back to GENMAP_FILE)")

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Convert a GEDCOM file to JSON and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().StringP("output", "o", "", "Output JSON path (default <file>.json)")
	parseCmd.Flags().Bool("stats-only", false, "Print statistics without writing JSON")
	parseCmd.Flags().String("search", "", "Also search for a person by name")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find people by name",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().Bool("json", false, "Print machine-readable matches")

	personCmd := &cobra.Command{
		Use:   "person <id>",
		Short: "Show one person with resolved relatives",
		Args:  cobra.ExactArgs(1),
		RunE:  runPerson,
	}
	personCmd.Flags().Bool("json", false, "Print machine-readable details")

	treeCmd := &cobra.Command{
		Use:   "tree <id>",
		Short: "Expand a family tree around a person",
		Args:  cobra.ExactArgs(1),
		RunE:  runTree,
	}
	treeCmd.Flags().IntP("generations", "g", 3, "Generations in each direction (>=1)")
	treeCmd.Flags().Bool("json", false, "Print machine-readable tree")

	locationsCmd := &cobra.Command{
		Use:   "locations <query>",
		Short: "Find people by birth, death or marriage place",
		Args:  cobra.ExactArgs(1),
		RunE:  runLocations,
	}
	locationsCmd.Flags().Bool("json", false, "Print machine-readable matches")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dataset statistics",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	statsCmd.Flags().Bool("json", false, "Print machine-readable statistics")

	scanCmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "List GEDCOM files in the workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().Bool("json", false, "Print machine-readable file list")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("genmap %s\n", version)
		},
	}

	rootCmd.AddCommand(
		parseCmd,
		searchCmd,
		personCmd,
		treeCmd,
		locationsCmd,
		statsCmd,
		scanCmd,
		serveCmd,
		versionCmd,
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	statsOnly, err := cmd.Flags().GetBool("stats-only")
	if err != nil {
		return err
	}
	search, err := cmd.Flags().GetString("search")
	if err != nil {
		return err
	}

	fmt.Printf("parsing %s\n", path)
	tree, err := gedcom.ParseFile(path)
	if err != nil {
		return err
	}
	engine := query.NewEngine(tree)
	stats := engine.Statistics()

	fmt.Printf("\nstatistics:\n")
	fmt.Printf("  individuals: %d\n", stats.TotalIndividuals)
	fmt.Printf("  families:    %d\n", stats.TotalFamilies)
	fmt.Printf("  living:      %d\n", stats.LivingPeople)
	if tree.Summary.SkippedLines > 0 {
		fmt.Printf("  skipped:     %d malformed lines\n", tree.Summary.SkippedLines)
	}

	if search != "" {
		matches := engine.FindPerson(search)
		fmt.Printf("\nmatches for %q:\n", search)
		if len(matches) == 0 {
			fmt.Println("  none")
		}
		shown := matches
		if len(shown) > maxSearchResults {
			shown = shown[:maxSearchResults]
		}
		for i, ind := range shown {
			fmt.Printf("  %d. %s [%s]\n", i+1, ind.Name, ind.ID)
			if ind.Birth.Date != "" {
				fmt.Printf("     born %s\n", ind.Birth.Date)
			}
		}
		if len(matches) > len(shown) {
			fmt.Printf("  ... and %d more\n", len(matches)-len(shown))
		}
	}

	if statsOnly {
		return nil
	}

	if output == "" {
		output = path + ".json"
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := tree.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	info, err := os.Stat(output)
	if err != nil {
		return err
	}
	fmt.Printf("\nwrote %s (%d bytes)\n", output, info.Size())
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	matches := engine.FindPerson(args[0])
	if asJSON {
		if matches == nil {
			matches = []*gedcom.Individual{}
		}
		return printJSON(map[string]any{
			"query":   args[0],
			"matches": matches,
		})
	}

	if len(matches) == 0 {
		fmt.Printf("no matches for %q\n", args[0])
		return nil
	}
	fmt.Printf("matches for %q (%d)\n", args[0], len(matches))
	for _, ind := range matches {
		line := fmt.Sprintf("- %s [%s]", ind.Name, ind.ID)
		if ind.Birth.Date != "" {
			line = fmt.Sprintf("%s  born %s", line, ind.Birth.Date)
		}
		fmt.Println(line)
	}
	return nil
}

func runPerson(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	details, err := engine.PersonDetails(args[0])
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(details)
	}

	fmt.Printf("%s [%s]\n", details.Name, details.ID)
	if details.Gender != "" {
		fmt.Printf("  gender:     %s\n", details.Gender)
	}
	if line := eventLine(details.Birth); line != "" {
		fmt.Printf("  born:       %s\n", line)
	}
	if line := eventLine(details.Death); line != "" {
		fmt.Printf("  died:       %s\n", line)
	}
	if details.Occupation != "" {
		fmt.Printf("  occupation: %s\n", details.Occupation)
	}
	if len(details.ParentNames) > 0 {
		fmt.Printf("  parents:    %s\n", strings.Join(details.ParentNames, ", "))
	}
	if len(details.SpouseNames) > 0 {
		fmt.Printf("  spouses:    %s\n", strings.Join(details.SpouseNames, ", "))
	}
	if len(details.ChildrenNames) > 0 {
		fmt.Printf("  children:   %s\n", strings.Join(details.ChildrenNames, ", "))
	}
	for _, note := range details.Notes {
		fmt.Printf("  note:       %s\n", note)
	}
	return nil
}

func runTree(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	generations, err := cmd.Flags().GetInt("generations")
	if err != nil {
		return err
	}
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	node, err := engine.FamilyTree(args[0], generations)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(node)
	}

	printTreeNode(node, "", 0)
	return nil
}

func runLocations(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	matches := engine.SearchByLocation(args[0])
	if asJSON {
		if matches == nil {
			matches = []query.LocationMatch{}
		}
		return printJSON(map[string]any{
			"query":   args[0],
			"matches": matches,
		})
	}

	if len(matches) == 0 {
		fmt.Printf("no matches for %q\n", args[0])
		return nil
	}
	fmt.Printf("matches for %q (%d)\n", args[0], len(matches))
	for _, m := range matches {
		fmt.Printf("- %s [%s]\n", m.Name, m.ID)
		if m.BirthPlace != "" {
			fmt.Printf("  born:    %s\n", m.BirthPlace)
		}
		if m.DeathPlace != "" {
			fmt.Printf("  died:    %s\n", m.DeathPlace)
		}
		if m.MarriagePlace != "" {
			fmt.Printf("  married: %s\n", m.MarriagePlace)
		}
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	stats := engine.Statistics()
	if asJSON {
		return printJSON(stats)
	}

	fmt.Printf("individuals:      %d\n", stats.TotalIndividuals)
	fmt.Printf("families:         %d\n", stats.TotalFamilies)
	fmt.Printf("living:           %d\n", stats.LivingPeople)
	fmt.Printf("gender:           M=%d F=%d unknown=%d\n",
		stats.GenderDistribution["M"],
		stats.GenderDistribution["F"],
		stats.GenderDistribution["Unknown"])
	if stats.LifespanSamples > 0 {
		fmt.Printf("average lifespan: %.1f years (%d samples)\n", stats.AverageLifespan, stats.LifespanSamples)
	}
	if len(stats.CommonSurnames) > 0 {
		fmt.Println("top surnames:")
		for _, sc := range stats.CommonSurnames {
			fmt.Printf("  %s (%d)\n", sc.Surname, sc.Count)
		}
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	root := workspace.DefaultRoot()
	if len(args) == 1 {
		root = args[0]
	}

	files, err := workspace.Scan(root)
	if err != nil {
		return err
	}
	if asJSON {
		if files == nil {
			files = []workspace.FileInfo{}
		}
		return printJSON(map[string]any{
			"root":  root,
			"files": files,
		})
	}

	if len(files) == 0 {
		fmt.Printf("no GEDCOM files found under %s\n", root)
		return nil
	}
	fmt.Printf("GEDCOM files under %s (%d)\n", root, len(files))
	for _, fi := range files {
		fmt.Printf("- %s  %d individuals, %d families, %d bytes\n", fi.Path, fi.Individuals, fi.Families, fi.SizeBytes)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	s := server.New(version)
	if path := datasetPath(); path != "" {
		if err := s.Load(path); err != nil {
			return err
		}
	}
	log.Printf("[serve] genmap %s listening on stdio", version)
	return s.Run(cmd.Context())
}

// datasetPath resolves the dataset for query commands: --file first, then
// the GENMAP_FILE environment variable.
func datasetPath() string {
	if dataFile != "" {
		return dataFile
	}
	return os.Getenv("GENMAP_FILE")
}

func loadEngine() (*query.Engine, error) {
	path := datasetPath()
	if path == "" {
		return nil, fmt.Errorf("no GEDCOM file given: pass --file or set GENMAP_FILE")
	}
	tree, err := gedcom.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return query.NewEngine(tree), nil
}

func printTreeNode(n *query.TreeNode, label string, depth int) {
	entry := fmt.Sprintf("%s%s%s [%s]", strings.Repeat("  ", depth), label, n.Name, n.ID)
	if years := lifeYears(n); years != "" {
		entry = fmt.Sprintf("%s (%s)", entry, years)
	}
	fmt.Println(entry)
	for _, parent := range n.Parents {
		printTreeNode(parent, "parent: ", depth+1)
	}
	for _, child := range n.Children {
		printTreeNode(child, "child: ", depth+1)
	}
}

func lifeYears(n *query.TreeNode) string {
	birth, birthOK := util.YearOf(n.Birth.Date)
	death, deathOK := util.YearOf(n.Death.Date)
	switch {
	case birthOK && deathOK:
		return fmt.Sprintf("%d-%d", birth, death)
	case birthOK:
		return fmt.Sprintf("b. %d", birth)
	case deathOK:
		return fmt.Sprintf("d. %d", death)
	}
	return ""
}

func eventLine(ev gedcom.EventDetail) string {
	switch {
	case ev.Date != "" && ev.Place != "":
		return fmt.Sprintf("%s, %s", ev.Date, ev.Place)
	case ev.Date != "":
		return ev.Date
	case ev.Place != "":
		return ev.Place
	}
	return ""
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
