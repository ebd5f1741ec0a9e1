package shell

// bannerArt is printed once at startup, in the theme's red.
const bannerArt = `
  ____  ___ _   _  ____ ____  _____ ____ _  __
 |  _ \|_ _| \ | |/ ___|  _ \| ____/ ___| |/ /
 | |_) || ||  \| | |  _| | | |  _|| |   | ' /
 |  __/ | || |\  | |_| | |_| | |___| |___| . \
 |_|   |___|_| \_|\____|____/|_____\____|_|\_\
`

func (s *Shell) printBanner() {
	s.printer.Redln("%s", bannerArt)
}
