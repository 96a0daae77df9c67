/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

// Capabilities feature flags consulted by the query layer.
type Capabilities struct {
	Sequences                         bool
	PooledSequences                   bool
	Limit                             bool
	UnionAll                          bool
	CommentOn                         bool
	CurrentTimestampSelection         bool
	CurrentTimestampCallable          bool
	EmptyInList                       bool
	ExistsInSelect                    bool
	ForceLobAsLastValue               bool
	PartitionBy                       bool
	NoWait                            bool
	SkipLocked                        bool
	RowValueConstructorInInList       bool
	TupleDistinctCounts               bool
	CanCreateSchema                   bool
	DropConstraints                   bool
	ANSIJoins                         bool
	ANSICase                          bool
	RefCursorOutParameters            bool
	QueryHints                        bool
	FollowOnLocking                   bool
	InExpressionCountLimit            int // 0 means unlimited
	MaxAliasLength                    int
	NativeIdentifierGeneratorStrategy string
}

// Strings fixed SQL fragments.
type Strings struct {
	CurrentTimestampSelect   string
	CurrentTimestampFunction string
	AddColumn                string
	CascadeConstraints       string
	CrossJoinSeparator       string
	SelectGUID               string
	CurrentSchema            string
	NullSelect               string
}
