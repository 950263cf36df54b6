// Package cursor implements the cursor state machine: position within the
// flattened display cache, horizontal/vertical/word/node navigation, and
// the "intended" memory that lets vertical and node moves survive ragged
// lines and differently-shaped sibling subtrees.
//
// State carries no reference to the tree or cache it was last used with;
// every method takes the current root and cache explicitly; this keeps the
// cursor trivially copyable for save/restore and for the "move node depth"
// bookkeeping the facade threads through reorder operations.
package cursor
