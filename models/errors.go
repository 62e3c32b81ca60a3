package models

import "errors"

var (
	ErrNoOptions              = errors.New("no initialized model options")
	ErrNoTrees                = errors.New("no trees in ensemble")
	ErrEmptyTree              = errors.New("tree has no nodes")
	ErrInvalidChild           = errors.New("child index out of range")
	ErrMalformedTree          = errors.New("tree is not a binary tree rooted at node 0")
	ErrFeatureOutOfRange      = errors.New("split feature index out of range")
	ErrZeroCover              = errors.New("node has no cover")
	ErrNoDesignMatrix         = errors.New("no design matrix for inference")
	ErrFeatureLenMismatch     = errors.New("number of features does not match the model")
	ErrFeatureNamesMismatch   = errors.New("number of feature names does not match number of features")
	ErrUnsupportedBooster     = errors.New("unsupported booster")
	ErrUnsupportedObjective   = errors.New("unsupported objective")
	ErrUnsupportedMultiOutput = errors.New("multi-output models are not supported")
	ErrInvalidBaseScore       = errors.New("invalid base score")
	ErrTreeArrayLenMismatch   = errors.New("tree arrays have different lengths")
	ErrCategoricalSplit       = errors.New("categorical splits are not supported")
)
