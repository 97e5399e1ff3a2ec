package journalapp

// Version of the journal application and its database tooling.
const Version = "0.1.0"
