package maze

// defaultRows is the stock 13x20 maze, start on the top edge and goal on the bottom edge
var defaultRows = []string{
	"#O##################",
	"#          #       #",
	"# ## ## #  #       #",
	"# #   # #  #       #",
	"# # # # #  ####    #",
	"# # # #            #",
	"# # # # ####   ## ##",
	"#          #       #",
	"## # #     #### #  #",
	"#  #   #      # #  #",
	"##         #       #",
	"#  ###          #  #",
	"##################X#",
}

// Default returns the built-in maze
func Default() *Grid {
	g, err := Parse(defaultRows)
	if err != nil {
		panic("maze: built-in maze is invalid: " + err.Error())
	}
	return g
}
