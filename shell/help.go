package shell

import "io"

func usage(w io.Writer) {
	io.WriteString(w, `commands:
new [language] [player ids...] - start a game (default: player1 player2)
show - display the board
rack <letters> - set the rack of the player on turn (? for a blank)
play <coords> <word> - make a play, e.g. play 8D CAT or play D8 CAT
    lowercase letters play a blank, e.g. play 8D CArS
exchange <letters> - swap tiles back into the bag
pass - pass the turn
score - show the scores
history - show the moves so far
save - save the current game
load <id> - resume a saved game
list - list saved games
lexicon <language> <path/to/wordlist> - use a word list for a language
seed <n> - seed the tile shuffle for the next game
active <player> <on|off> - sit a player down or stand them up
bye - exit
`)
}
