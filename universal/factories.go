package universal

import "github.com/reusee/turing/encodings"

// BinaryIncrement adds one to a binary number, leaving the head on the
// leftmost changed digit.
func BinaryIncrement() encodings.EncodedMachine {
	return encodings.EncodedMachine{
		ID:              "increment",
		Name:            "Binary Increment",
		Description:     "Increments a binary number by 1",
		States:          []string{"start", "scan_right", "increment", "carry", "halt"},
		InputAlphabet:   []string{"0", "1"},
		TapeAlphabet:    []string{"0", "1", "_"},
		InitialState:    "start",
		BlankSymbol:     "_",
		AcceptingStates: []string{"halt"},
		Transitions: []string{
			"start,0,scan_right,0,R",
			"start,1,scan_right,1,R",
			"start,_,increment,_,L",
			"scan_right,0,scan_right,0,R",
			"scan_right,1,scan_right,1,R",
			"scan_right,_,increment,_,L",
			"increment,0,halt,1,N",
			"increment,1,carry,0,L",
			"increment,_,halt,1,N",
			"carry,0,halt,1,N",
			"carry,1,carry,0,L",
			"carry,_,halt,1,N",
		},
	}
}

// PalindromeChecker accepts binary palindromes by erasing matching outer
// symbols pairwise.
func PalindromeChecker() encodings.EncodedMachine {
	return encodings.EncodedMachine{
		ID:              "palindrome",
		Name:            "Palindrome Checker",
		Description:     "Checks if a binary string is a palindrome",
		States:          []string{"start", "have0", "have1", "check0", "check1", "back", "accept", "reject"},
		InputAlphabet:   []string{"0", "1"},
		TapeAlphabet:    []string{"0", "1", "_"},
		InitialState:    "start",
		BlankSymbol:     "_",
		AcceptingStates: []string{"accept"},
		Transitions: []string{
			"start,0,have0,_,R",
			"start,1,have1,_,R",
			"start,_,accept,_,N",

			"have0,0,have0,0,R",
			"have0,1,have0,1,R",
			"have0,_,check0,_,L",
			"have1,0,have1,0,R",
			"have1,1,have1,1,R",
			"have1,_,check1,_,L",

			"check0,0,back,_,L",
			"check0,1,reject,1,N",
			"check0,_,accept,_,N",
			"check1,1,back,_,L",
			"check1,0,reject,0,N",
			"check1,_,accept,_,N",

			"back,0,back,0,L",
			"back,1,back,1,L",
			"back,_,start,_,R",
		},
	}
}

// DivisibilityByThree tracks the value of a binary number modulo 3.
func DivisibilityByThree() encodings.EncodedMachine {
	return encodings.EncodedMachine{
		ID:              "div3",
		Name:            "Divisibility by 3",
		Description:     "Checks if a binary number is divisible by 3",
		States:          []string{"rem0", "rem1", "rem2", "accept", "reject"},
		InputAlphabet:   []string{"0", "1"},
		TapeAlphabet:    []string{"0", "1", "_"},
		InitialState:    "rem0",
		BlankSymbol:     "_",
		AcceptingStates: []string{"accept"},
		Transitions: []string{
			"rem0,0,rem0,0,R",
			"rem0,1,rem1,1,R",
			"rem0,_,accept,_,N",
			"rem1,0,rem2,0,R",
			"rem1,1,rem0,1,R",
			"rem1,_,reject,_,N",
			"rem2,0,rem1,0,R",
			"rem2,1,rem2,1,R",
			"rem2,_,reject,_,N",
		},
	}
}

// AnBn accepts a^n b^n for n >= 0 by pairing each a with a b.
func AnBn() encodings.EncodedMachine {
	return encodings.EncodedMachine{
		ID:              "anbn",
		Name:            "a^n b^n Recognizer",
		Description:     "Recognizes strings of the form a^n b^n",
		States:          []string{"start", "find_b", "return_left", "check_tail", "accept", "reject"},
		InputAlphabet:   []string{"a", "b"},
		TapeAlphabet:    []string{"a", "b", "X", "Y", "_"},
		InitialState:    "start",
		BlankSymbol:     "_",
		AcceptingStates: []string{"accept"},
		Transitions: []string{
			"start,a,find_b,X,R",
			"start,Y,check_tail,Y,R",
			"start,_,accept,_,N",
			"start,b,reject,b,N",

			"find_b,a,find_b,a,R",
			"find_b,Y,find_b,Y,R",
			"find_b,b,return_left,Y,L",
			"find_b,_,reject,_,N",

			"return_left,a,return_left,a,L",
			"return_left,Y,return_left,Y,L",
			"return_left,X,start,X,R",

			"check_tail,Y,check_tail,Y,R",
			"check_tail,_,accept,_,N",
			"check_tail,a,reject,a,N",
			"check_tail,b,reject,b,N",
		},
	}
}

// Builtins returns the built-in machines.
func Builtins() []encodings.EncodedMachine {
	return []encodings.EncodedMachine{
		BinaryIncrement(),
		PalindromeChecker(),
		DivisibilityByThree(),
		AnBn(),
	}
}
