package policy

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/gorgonia/noughts/game"
	"github.com/gorgonia/noughts/game/ttt"
)

type dotNode struct {
	*Entry
	Player game.Player
}

func (n dotNode) Key() uint32 { return uint32(n.board) }

func (n dotNode) Entropy() string { return fmt.Sprintf("%.3f", n.Entry.Entropy()) }

// Rows renders the board, printing the weight in place of every empty cell.
func (n dotNode) Rows() []string {
	var buf bytes.Buffer
	retVal := make([]string, 0, ttt.Width)
	for i := 0; i < ttt.Size; i++ {
		pos := game.Single(i)
		if c := n.board.Get(pos); c != game.None {
			fmt.Fprintf(&buf, "<TD><B>%s</B></TD>", c)
		} else {
			fmt.Fprintf(&buf, "<TD>%d</TD>", n.weights[i])
		}
		if (i+1)%ttt.Width == 0 {
			retVal = append(retVal, buf.String())
			buf.Reset()
		}
	}
	return retVal
}

// ToDot exports the entries reachable from root, up to depth moves deep, as a Graphviz
// digraph. Only boards present in the table become nodes. The edge of the greedy move is
// drawn bold.
func (t *Table) ToDot(root ttt.Board, depth int) string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	var buf bytes.Buffer
	seen := make(map[ttt.Board]bool)
	frontier := []ttt.Board{root}
	for d := 0; d <= depth && len(frontier) > 0; d++ {
		var next []ttt.Board
		for _, b := range frontier {
			e, ok := t.Lookup(b)
			if !ok || seen[b] {
				continue
			}
			seen[b] = true

			n := dotNode{Entry: e, Player: b.ToMove()}
			buf.Reset()
			tmpl.Execute(&buf, n)
			g.AddNode("G", nodeName(b), map[string]string{
				"fontname": "Monaco",
				"shape":    "none",
				"label":    buf.String(),
			})

			if d == depth || b.IsTerminal() {
				continue
			}
			best := e.Best()
			for i := 0; i < ttt.Size; i++ {
				pos := game.Single(i)
				if b.Get(pos) != game.None {
					continue
				}
				child := b.Set(pos, game.Colour(n.Player))
				if _, ok := t.Lookup(child); !ok {
					continue
				}
				attrs := map[string]string{"label": fmt.Sprintf("\"%d\"", pos)}
				if pos == best {
					attrs["penwidth"] = "3"
				}
				next = append(next, child)
				// the child's node may be added later; gographviz accepts edges to unknown nodes
				g.AddEdge(nodeName(b), nodeName(child), true, attrs)
			}
		}
		frontier = next
	}
	return g.String()
}

func nodeName(b ttt.Board) string { return fmt.Sprintf("%d", uint32(b)) }

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD COLSPAN="3">Board {{.Key}} ({{printf "%s" .Player}} to move)</TD></TR>
{{range .Rows}}<TR>{{.}}</TR>
{{end}}<TR><TD COLSPAN="3">Entropy {{.Entropy}}</TD></TR>
</TABLE>
>`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("entry").Parse(tmplRaw))
}
