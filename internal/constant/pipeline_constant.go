package constant

// EmbedSourceTopic is the in-process queue topic for freshly registered
// source entries awaiting chunking and embedding.
const EmbedSourceTopic = "source.embed"
