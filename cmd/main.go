package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	trits "github.com/pombredanne/succinctrits"

	"github.com/urfave/cli/v2"
)

func directoryPath(vectorPath string, target uint8) string {
	return fmt.Sprintf("%s.rs%d", vectorPath, target)
}

func loadVector(path string) (*trits.Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return trits.ReadVectorFrom(f)
}

// loadDirectory reads the directory file compiled next to the vector,
// falling back to an in-memory build when none exists
func loadDirectory(vectorPath string, vec *trits.Vector, target uint8) (*trits.RankSelect, error) {
	f, err := os.Open(directoryPath(vectorPath, target))
	if os.IsNotExist(err) {
		return trits.NewRankSelect(vec, target), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return trits.ReadRankSelectFrom(f, vec)
}

func parseTarget(c *cli.Context) (uint8, error) {
	target := c.Uint("target")
	if target > 2 {
		return 0, fmt.Errorf("target must be 0, 1 or 2, got %d", target)
	}
	return uint8(target), nil
}

func main() {
	vectorFlag := &cli.StringFlag{
		Name:    "vector",
		Aliases: []string{"v"},
		Value:   "trits.bin",
		Usage:   "file containing a compiled trit vector",
	}
	targetFlag := &cli.UintFlag{
		Name:    "target",
		Aliases: []string{"t"},
		Usage:   "target trit (0, 1 or 2)",
	}

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:  "compile",
				Usage: "compile a string of 0/1/2 digits into an indexed trit vector",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"out", "o"},
						Value:   "trits.bin",
						Usage:   "name of the file to write the trit vector to",
					},
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Usage:   "file to read from (default is stdin)",
					},
				},
				Action: func(c *cli.Context) error {
					output := c.String("output")
					if _, err := os.Stat(output); !os.IsNotExist(err) {
						return fmt.Errorf("refusing to over-write existing file: %s", output)
					}
					if c.NArg() > 0 {
						return fmt.Errorf("unexpected command line arguments: %q", c.Args().Slice())
					}

					var reader io.Reader
					if c.IsSet("input") {
						f, err := os.Open(c.String("input"))
						if err != nil {
							return err
						}
						reader = f
						defer f.Close()
					} else {
						reader = os.Stdin
					}

					builder := trits.NewBuilder(0)
					rdr := bufio.NewReader(reader)
					start := time.Now()
					for {
						ch, err := rdr.ReadByte()
						if err != nil {
							if err == io.EOF {
								break
							}
							return err
						}
						switch ch {
						case '0', '1', '2':
							builder.Push(ch - '0')
						case ' ', '\t', '\r', '\n':
						default:
							return fmt.Errorf("invalid trit character %q at position %d", ch, builder.Len())
						}
					}
					vec := builder.Finalize()
					log.Printf("packed %d trits in %s", vec.Len(), time.Since(start))

					o, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("error opening %s: %s", output, err)
					}
					defer o.Close()
					if n, err := vec.WriteTo(o); err != nil {
						return fmt.Errorf("error writing trit vector: %s", err)
					} else {
						log.Printf("wrote %d bytes to %s", n, output)
					}

					for target := uint8(0); target < 3; target++ {
						rs := trits.NewRankSelect(vec, target)
						path := directoryPath(output, target)
						d, err := os.Create(path)
						if err != nil {
							return fmt.Errorf("error opening %s: %s", path, err)
						}
						n, err := rs.WriteTo(d)
						d.Close()
						if err != nil {
							return fmt.Errorf("error writing directory: %s", err)
						}
						log.Printf("wrote %d bytes to %s (%d occurrences of trit %d)",
							n, path, rs.NumTargets(), target)
					}
					return nil
				},
			},
			{
				Name:  "describe",
				Usage: "read the header from a compiled trit vector and describe it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"in", "i"},
						Usage:   "file containing a compiled trit vector",
					},
				},
				Action: func(c *cli.Context) error {
					h, err := trits.ReadVectorHeaderFromPath(c.String("i"))
					if err != nil {
						return fmt.Errorf("describe: can't read input file: %w", err)
					}
					fmt.Printf("trit vector version %d - %d trits in %d packed bytes\n",
						h.Version, h.NumTrits, h.NumTrytes)
					trits.Explain(h.NumTrits)
					return nil
				},
			},
			{
				Name:      "rank",
				Usage:     "count occurrences of the target trit before a position",
				ArgsUsage: "POSITION",
				Flags:     []cli.Flag{vectorFlag, targetFlag},
				Action: func(c *cli.Context) error {
					target, err := parseTarget(c)
					if err != nil {
						return err
					}
					i, err := strconv.ParseUint(c.Args().First(), 10, 64)
					if err != nil {
						return fmt.Errorf("rank: invalid position %q", c.Args().First())
					}
					vec, err := loadVector(c.String("vector"))
					if err != nil {
						return fmt.Errorf("rank: can't read vector: %w", err)
					}
					if i >= vec.Len() {
						return fmt.Errorf("rank: position %d out of range, vector holds %d trits", i, vec.Len())
					}
					rs, err := loadDirectory(c.String("vector"), vec, target)
					if err != nil {
						return fmt.Errorf("rank: can't load directory: %w", err)
					}
					fmt.Printf("rank_%d(%d) = %d\n", target, i, rs.Rank(i))
					return nil
				},
			},
			{
				Name:      "select",
				Usage:     "find the position of the (n+1)-th occurrence of the target trit",
				ArgsUsage: "ORDINAL",
				Flags:     []cli.Flag{vectorFlag, targetFlag},
				Action: func(c *cli.Context) error {
					target, err := parseTarget(c)
					if err != nil {
						return err
					}
					n, err := strconv.ParseUint(c.Args().First(), 10, 64)
					if err != nil {
						return fmt.Errorf("select: invalid ordinal %q", c.Args().First())
					}
					vec, err := loadVector(c.String("vector"))
					if err != nil {
						return fmt.Errorf("select: can't read vector: %w", err)
					}
					rs, err := loadDirectory(c.String("vector"), vec, target)
					if err != nil {
						return fmt.Errorf("select: can't load directory: %w", err)
					}
					if n >= rs.NumTargets() {
						return fmt.Errorf("select: ordinal %d out of range, vector holds %d occurrences of trit %d",
							n, rs.NumTargets(), target)
					}
					fmt.Printf("select_%d(%d) = %d\n", target, n, rs.Select(n))
					return nil
				},
			},
			{
				Name:  "dump",
				Usage: "print the trit sequence of a compiled vector",
				Flags: []cli.Flag{vectorFlag},
				Action: func(c *cli.Context) error {
					vec, err := loadVector(c.String("vector"))
					if err != nil {
						return fmt.Errorf("dump: can't read vector: %w", err)
					}
					vec.DebugDump()
					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
