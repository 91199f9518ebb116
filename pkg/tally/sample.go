package tally

// SampleSheet is the document a fresh editor starts from.
const SampleSheet = "Advantage, Modifier +10 [10*5*2]"
